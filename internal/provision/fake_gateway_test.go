package provision

import (
	"fmt"
	"io/fs"
	"strings"
)

// fakeGateway simulates the live machine for tests. Every mutating call
// is recorded in calls so tests can assert what ran and in what order.
type fakeGateway struct {
	installed    map[string]bool
	binaries     map[string]bool
	probeOutputs map[string]string
	probeErrs    map[string]error
	queryErrs    map[string]error
	fetchErrs    map[string]error
	pkgMgrErrs   map[string]error
	installErr   error
	copyGlobErr  error
	writeErr     error
	files        map[string][]byte
	calls        []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		installed:    make(map[string]bool),
		binaries:     make(map[string]bool),
		probeOutputs: make(map[string]string),
		probeErrs:    make(map[string]error),
		queryErrs:    make(map[string]error),
		fetchErrs:    make(map[string]error),
		pkgMgrErrs:   make(map[string]error),
		files:        make(map[string][]byte),
	}
}

func (f *fakeGateway) record(parts ...string) {
	f.calls = append(f.calls, strings.Join(parts, " "))
}

func (f *fakeGateway) RunPackageManager(args ...string) error {
	call := "apt " + strings.Join(args, " ")
	f.record(call)
	if err, ok := f.pkgMgrErrs[args[0]]; ok {
		return err
	}
	return nil
}

func (f *fakeGateway) InstallLocalPackage(path string) error {
	f.record("dpkg -i", path)
	return f.installErr
}

func (f *fakeGateway) QueryPackage(name string) (bool, error) {
	if err, ok := f.queryErrs[name]; ok {
		return false, err
	}
	return f.installed[name], nil
}

func (f *fakeGateway) RunProbe(name string, args ...string) (string, error) {
	if err, ok := f.probeErrs[name]; ok {
		return "", err
	}
	if out, ok := f.probeOutputs[name]; ok {
		return out, nil
	}
	return "", fmt.Errorf("%s: no fake output configured", name)
}

func (f *fakeGateway) LookPath(name string) bool {
	return f.binaries[name]
}

func (f *fakeGateway) Fetch(url, dest string) error {
	f.record("fetch", url, dest)
	if err, ok := f.fetchErrs[url]; ok {
		return err
	}
	f.files[dest] = []byte("downloaded from " + url)
	return nil
}

func (f *fakeGateway) WriteFile(path string, data []byte, perm fs.FileMode) error {
	f.record("write", path)
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[path] = data
	return nil
}

func (f *fakeGateway) CopyGlob(pattern, destDir string) error {
	f.record("copyglob", pattern, destDir)
	return f.copyGlobErr
}

// callsMatching returns the recorded calls containing substr.
func (f *fakeGateway) callsMatching(substr string) []string {
	var matched []string
	for _, call := range f.calls {
		if strings.Contains(call, substr) {
			matched = append(matched, call)
		}
	}
	return matched
}
