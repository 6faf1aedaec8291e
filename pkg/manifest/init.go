package manifest

import (
	"fmt"
	"os"

	"github.com/clangtc/clangtc/pkg/api/clangtc"
	"sigs.k8s.io/yaml"
)

const defaultBaseURL = "https://raw.githubusercontent.com/clangtc/clangtc-bins/main/assets/clang"

type SourceInit struct {
	OS         string
	Arch       string
	SourceFile string
	Baseurl    string
}

func (s *SourceInit) Init() error {
	_, err := os.Stat(s.SourceFile)
	if !os.IsNotExist(err) {
		return fmt.Errorf("source file %s already exists.", s.SourceFile)
	}
	sources := &clangtc.Sources{
		Sources: []clangtc.Source{
			{
				Name:    fmt.Sprintf("%s-%s-clang", s.OS, s.Arch),
				Baseurl: s.Baseurl,
			},
		},
	}
	data, err := yaml.Marshal(sources)
	if err != nil {
		return err
	}
	return os.WriteFile(s.SourceFile, data, 0660)
}

func NewRemoteInit(os string, arch string, sourceFile string) *SourceInit {
	return &SourceInit{
		OS:         os,
		Arch:       arch,
		SourceFile: sourceFile,
		Baseurl:    defaultBaseURL,
	}
}

func LoadSourceFile(file string) (*clangtc.Sources, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	sources := &clangtc.Sources{}
	err = yaml.Unmarshal(data, sources)
	if err != nil {
		return nil, err
	}
	return sources, nil
}

func LoadSourceFiles(files []string) (*clangtc.Sources, error) {
	sources := &clangtc.Sources{}
	for _, file := range files {
		loaded, err := LoadSourceFile(file)
		if err != nil {
			return nil, err
		}
		sources.Sources = append(sources.Sources, loaded.Sources...)
	}
	return sources, nil
}
