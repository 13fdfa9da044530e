// Package project reads and writes the FlatBasic project manifest.
package project

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// ManifestName is the file name of the manifest in a project directory.
const ManifestName = "FlatBasic Project"

// SourceExt is appended to the project name to form the default entry file.
const SourceExt = ".fb"

type Manifest struct {
	Name  string `yaml:"Name"`
	Entry string `yaml:"Entry"`
}

// Init writes a new manifest into dir. An existing manifest is not
// overwritten.
func Init(dir, name string) (Manifest, error) {
	if name == "" {
		return Manifest{}, fmt.Errorf("no project name provided")
	}

	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return Manifest{}, fmt.Errorf("%s already exists", path)
	}

	m := Manifest{
		Name:  name,
		Entry: name + SourceExt,
	}
	return m, m.Save(dir)
}

func (m Manifest) Save(dir string) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", ManifestName, err)
	}
	if err := ioutil.WriteFile(filepath.Join(dir, ManifestName), out, 0644); err != nil {
		return fmt.Errorf("error creating %s: %w", ManifestName, err)
	}
	return nil
}

func Load(dir string) (Manifest, error) {
	data, err := ioutil.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return Manifest{}, fmt.Errorf("error reading %s: %w", ManifestName, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("error reading %s: %w", ManifestName, err)
	}
	if m.Entry == "" {
		if m.Name == "" {
			return Manifest{}, fmt.Errorf("%s names neither an entry file nor a project", ManifestName)
		}
		m.Entry = m.Name + SourceExt
	}
	return m, nil
}

// EntryPath resolves the entry file relative to the project directory.
func (m Manifest) EntryPath(dir string) string {
	if filepath.IsAbs(m.Entry) {
		return m.Entry
	}
	return filepath.Join(dir, m.Entry)
}
