package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/logging"
	"github.com/templer-labs/templer/internal/registry"
	"github.com/templer-labs/templer/internal/scaffold"
	"github.com/templer-labs/templer/internal/structure"
)

// Discover returns the manifest files found directly below each search
// directory, in search order. A directory holding both a YAML and a TOML
// manifest contributes the YAML one. Missing directories are skipped.
func Discover(paths []string) ([]string, error) {
	var found []string
	for _, dir := range paths {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			log := logging.Get("manifest")
			log.Debug().Str("dir", dir).Msg("template path does not exist")
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfig, "reading template path %s", dir)
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			for _, name := range []string{FileName, TOMLFileName} {
				p := filepath.Join(dir, e.Name(), name)
				if _, err := os.Stat(p); err == nil {
					names = append(names, p)
					break
				}
			}
		}
		slices.Sort(names)
		found = append(found, names...)
	}
	return found, nil
}

// Register loads every manifest below paths and registers its template and
// structures in reg.
func Register(reg *registry.Registry, paths []string, toolVersion string) error {
	files, err := Discover(paths)
	if err != nil {
		return err
	}
	for _, p := range files {
		if err := RegisterFile(reg, p, toolVersion); err != nil {
			return err
		}
	}
	return nil
}

// RegisterFile loads one manifest. Its files directory and structure paths
// are resolved relative to the manifest.
func RegisterFile(reg *registry.Registry, path, toolVersion string) error {
	log := logging.Get("manifest")
	m, err := ParseFile(path)
	if err != nil {
		return err
	}
	if err := m.CheckRequires(toolVersion); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	root := os.DirFS(dir)

	for _, s := range m.Structures {
		name, sub := s.Name, filepath.ToSlash(filepath.Clean(s.Path))
		if !fs.ValidPath(sub) {
			return errors.Newf(errors.ErrManifestInvalid, "structure %s in %s: path must stay inside the template directory", name, path)
		}
		if err := reg.RegisterStructure(name, func() *structure.Structure {
			return &structure.Structure{Name: name, Trees: []scaffold.Tree{{FS: root, Root: sub}}}
		}); err != nil {
			return err
		}
	}

	var files fs.FS
	filesDir := m.Files
	if filesDir == "" {
		filesDir = "files"
	}
	filesDir = filepath.ToSlash(filepath.Clean(filesDir))
	if !fs.ValidPath(filesDir) {
		return errors.Newf(errors.ErrManifestInvalid, "template %s in %s: files must stay inside the template directory", m.Name, path)
	}
	if info, err := fs.Stat(root, filesDir); err == nil && info.IsDir() {
		files, err = fs.Sub(root, filesDir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrManifestInvalid, "template %s", m.Name)
		}
	} else if m.Files != "" {
		return errors.Newf(errors.ErrManifestInvalid, "template %s: files directory %s not found", m.Name, filesDir)
	}

	factory, err := m.Factory(files)
	if err != nil {
		return err
	}
	if err := reg.RegisterTemplate(factory); err != nil {
		return err
	}
	log.Debug().Str("manifest", path).Str("template", m.Distribution+"#"+m.Name).Msg("loaded template manifest")
	return nil
}
