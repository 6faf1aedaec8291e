package deploy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
)

const peOutput = `
app.exe:	file format pe-x86-64

The Import Tables:
  lookup 00004000 time 00000000 fwd 00000000 name 000042ac addr 00004078
    DLL Name: KERNEL32.dll
    Hint/Ord  Name
      528 GetCurrentProcess
    DLL Name: libwinpthread-1.dll
      12 pthread_create
`

const readelfOutput = `
Dynamic section at offset 0x2d48 contains 27 entries:
  Tag        Type                         Name/Value
 0x0000000000000001 (NEEDED)             Shared library: [libc++.so.1]
 0x0000000000000001 (NEEDED)             Shared library: [libm.so.6]
 0x000000000000000c (INIT)               0x1000
`

const objdumpElfOutput = `
Dynamic Section:
  NEEDED               libunwind.so.1
  NEEDED               libc.so.6
  SONAME               libfoo.so.1
  INIT                 0x0000000000001000
`

const otoolOutput = `app:
	/usr/lib/libc++.1.dylib (compatibility version 1.0.0, current version 1700.255.0)
	/usr/lib/libSystem.B.dylib (compatibility version 1.0.0, current version 1351.0.0)
`

func TestParseImports(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "PE import tables",
			output: peOutput,
			want:   []string{"KERNEL32.dll", "libwinpthread-1.dll"},
		},
		{
			name:   "readelf dynamic section",
			output: readelfOutput,
			want:   []string{"libc++.so.1", "libm.so.6"},
		},
		{
			name:   "objdump dynamic section",
			output: objdumpElfOutput,
			want:   []string{"libunwind.so.1", "libc.so.6"},
		},
		{
			name:   "otool load commands",
			output: otoolOutput,
			want:   []string{"/usr/lib/libc++.1.dylib", "/usr/lib/libSystem.B.dylib"},
		},
		{
			name:   "empty output means zero dependencies",
			output: "",
			want:   nil,
		},
		{
			name:   "metadata only",
			output: "app.exe:\tfile format pe-x86-64\n\nSections:\n",
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			names, err := ParseImports([]byte(tt.output))
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(names).To(Equal(tt.want))
		})
	}
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-objdump")
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestToolInspector(t *testing.T) {
	g := NewGomegaWithT(t)
	tool := writeScript(t, "#!/bin/sh\nprintf '    DLL Name: libwinpthread-1.dll\\n    DLL Name: KERNEL32.dll\\n'\n")

	inspector := NewToolInspector(tool)
	names, err := inspector.Inspect(context.Background(), "/some/app.exe")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(names).To(Equal([]string{"libwinpthread-1.dll", "KERNEL32.dll"}))
}

func TestToolInspectorMissingTool(t *testing.T) {
	g := NewGomegaWithT(t)
	inspector := NewToolInspector(filepath.Join(t.TempDir(), "no-such-tool"))
	_, err := inspector.Inspect(context.Background(), "/some/app.exe")
	g.Expect(errors.Is(err, ErrInspectionUnavailable)).To(BeTrue())
}

func TestToolInspectorToolFailure(t *testing.T) {
	g := NewGomegaWithT(t)
	tool := writeScript(t, "#!/bin/sh\necho 'corrupted binary' >&2\nexit 1\n")

	inspector := NewToolInspector(tool)
	_, err := inspector.Inspect(context.Background(), "/some/app.exe")
	g.Expect(errors.Is(err, ErrInspectionFailed)).To(BeTrue())
}

func TestParseImportsRejectsMalformedLines(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{
			name:   "DLL name line without a token",
			output: "    DLL Name:   \n",
		},
		{
			name:   "NEEDED entry without a bracketed name",
			output: " 0x01 (NEEDED)             Shared library: libm.so.6\n",
		},
		{
			name:   "NEEDED entry with trailing garbage",
			output: "  NEEDED  libc.so.6  libm.so.6\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			_, err := ParseImports([]byte(tt.output))
			var parseErr *ParseError
			g.Expect(err).To(HaveOccurred())
			g.Expect(errors.As(err, &parseErr)).To(BeTrue())
		})
	}
}
