package deploy

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestBaselineFor(t *testing.T) {
	g := NewGomegaWithT(t)

	mingw, err := BaselineFor("mingw")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(mingw.Names).To(ContainElement("libwinpthread-1.dll"))
	g.Expect(mingw.Version).ToNot(BeEmpty())

	_, err = BaselineFor("msvc")
	g.Expect(err).To(HaveOccurred())
}

func TestLoadBaseline(t *testing.T) {
	g := NewGomegaWithT(t)
	file := writeFile(t, t.TempDir(), "baselines.yaml", `
version: custom-7
profiles:
  mingw:
    - libwinpthread-1.dll
  llvm:
    - libc++.so.1
    - libunwind.so.1
`)

	fallback, err := LoadBaseline(file, "llvm")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(fallback.Version).To(Equal("custom-7"))
	g.Expect(fallback.Names).To(Equal([]string{"libc++.so.1", "libunwind.so.1"}))

	_, err = LoadBaseline(file, "msvc")
	g.Expect(err).To(HaveOccurred())
}
