package provision

import (
	"errors"
	"strings"
	"testing"
)

func TestInstallPackageAction(t *testing.T) {
	gw := newFakeGateway()

	action := NewInstallPackageAction(gw, "build-essential")
	if err := action.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(gw.calls) != 1 || gw.calls[0] != "apt install -y build-essential" {
		t.Errorf("Apply() recorded calls = %v, want single install", gw.calls)
	}
}

func TestInstallPackageAction_Failure(t *testing.T) {
	gw := newFakeGateway()
	gw.pkgMgrErrs["install"] = errors.New("unable to locate package")

	action := NewInstallPackageAction(gw, "no-such-package")
	err := action.Apply()
	if err == nil {
		t.Fatal("Apply() should return error when install fails")
	}

	var installErr *InstallError
	if !errors.As(err, &installErr) {
		t.Errorf("Apply() error type = %T, want *InstallError", err)
	}
	if installErr.Target != "no-such-package" {
		t.Errorf("InstallError.Target = %s, want package name", installErr.Target)
	}
}

func TestSystemUpgradeAction_RunsSubStepsInOrder(t *testing.T) {
	gw := newFakeGateway()

	action := NewSystemUpgradeAction(gw)
	if err := action.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	expected := []string{"apt update", "apt upgrade -y", "apt autoremove -y"}
	if len(gw.calls) != len(expected) {
		t.Fatalf("Apply() made %d calls, want %d: %v", len(gw.calls), len(expected), gw.calls)
	}
	for i, call := range expected {
		if gw.calls[i] != call {
			t.Errorf("call %d = %q, want %q", i, gw.calls[i], call)
		}
	}
}

func TestSystemUpgradeAction_StopsAtFirstFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.pkgMgrErrs["upgrade"] = errors.New("held broken packages")

	action := NewSystemUpgradeAction(gw)
	err := action.Apply()
	if err == nil {
		t.Fatal("Apply() should return error when upgrade fails")
	}

	if len(gw.callsMatching("autoremove")) != 0 {
		t.Error("autoremove should not run after a failed upgrade")
	}
}

func TestWriteEnvironmentConfigAction(t *testing.T) {
	gw := newFakeGateway()

	action := NewWriteEnvironmentConfigAction(gw, "/etc/profile.d/cudaprep.sh", "/usr/local/cuda-12.8")
	if err := action.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	content := string(gw.files["/etc/profile.d/cudaprep.sh"])
	if !strings.Contains(content, "export PATH=/usr/local/cuda-12.8/bin${PATH:+:${PATH}}") {
		t.Errorf("Profile missing PATH export, got:\n%s", content)
	}
	if !strings.Contains(content, "export LD_LIBRARY_PATH=/usr/local/cuda-12.8/lib64${LD_LIBRARY_PATH:+:${LD_LIBRARY_PATH}}") {
		t.Errorf("Profile missing LD_LIBRARY_PATH export, got:\n%s", content)
	}
}

func TestWriteEnvironmentConfigAction_Idempotent(t *testing.T) {
	gw := newFakeGateway()

	action := NewWriteEnvironmentConfigAction(gw, "/etc/profile.d/cudaprep.sh", "/usr/local/cuda-12.8")
	if err := action.Apply(); err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}
	first := string(gw.files["/etc/profile.d/cudaprep.sh"])

	if err := action.Apply(); err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}
	second := string(gw.files["/etc/profile.d/cudaprep.sh"])

	if first != second {
		t.Errorf("Repeated Apply() changed profile content:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if strings.Count(second, "export PATH=") != 1 {
		t.Error("Profile should contain exactly one PATH export after repeated writes")
	}
}

func TestWriteEnvironmentConfigAction_WriteFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.writeErr = errors.New("read-only filesystem")

	action := NewWriteEnvironmentConfigAction(gw, "/etc/profile.d/cudaprep.sh", "/usr/local/cuda-12.8")
	if err := action.Apply(); err == nil {
		t.Error("Apply() should return error when write fails")
	}
}
