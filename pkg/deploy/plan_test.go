package deploy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestPlanClassifiesUpToDateEntries(t *testing.T) {
	g := NewGomegaWithT(t)
	libDir := t.TempDir()
	destDir := t.TempDir()

	fresh := writeFile(t, libDir, "libfresh.so", "fresh")
	stale := writeFile(t, libDir, "libstale.so", "stale")
	missing := writeFile(t, libDir, "libmissing.so", "missing")

	now := time.Now()
	writeFile(t, destDir, "libfresh.so", "fresh")
	g.Expect(os.Chtimes(filepath.Join(destDir, "libfresh.so"), now, now.Add(time.Hour))).To(Succeed())
	writeFile(t, destDir, "libstale.so", "stale")
	g.Expect(os.Chtimes(filepath.Join(destDir, "libstale.so"), now, now.Add(-time.Hour))).To(Succeed())

	plan, err := NewPlan([]*Library{
		{Name: "libfresh.so", Path: fresh},
		{Name: "libstale.so", Path: stale},
		{Name: "libmissing.so", Path: missing},
	}, destDir)

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(plan).To(HaveLen(3))
	g.Expect(plan[0].UpToDate).To(BeTrue())
	g.Expect(plan[1].UpToDate).To(BeFalse())
	g.Expect(plan[2].UpToDate).To(BeFalse())
}

func TestPlanTreatsTruncatedDestinationAsStale(t *testing.T) {
	g := NewGomegaWithT(t)
	libDir := t.TempDir()
	destDir := t.TempDir()

	src := writeFile(t, libDir, "libtrunc.so", "full content")
	writeFile(t, destDir, "libtrunc.so", "full")
	now := time.Now()
	g.Expect(os.Chtimes(filepath.Join(destDir, "libtrunc.so"), now, now.Add(time.Hour))).To(Succeed())

	plan, err := NewPlan([]*Library{{Name: "libtrunc.so", Path: src}}, destDir)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(plan[0].UpToDate).To(BeFalse())
}
