// Package structure defines static file trees that templates pull into a
// generated project, such as documentation skeletons and license files.
package structure

import (
	"context"
	"fmt"

	"github.com/templer-labs/templer/internal/scaffold"
	"github.com/templer-labs/templer/internal/writer"
)

// Structure is a named, ordered list of trees copied into the output.
type Structure struct {
	Name  string
	Trees []scaffold.Tree
}

// Factory builds a fresh Structure for one use.
type Factory func() *Structure

// Write copies every tree of s into outputDir, creating it if needed.
func (s *Structure) Write(ctx context.Context, w *writer.Writer, outputDir string, values map[string]any) ([]string, error) {
	if err := w.EnsureDir(outputDir); err != nil {
		return nil, err
	}
	var files []string
	for _, tree := range s.Trees {
		res, err := scaffold.Write(ctx, w, tree, outputDir, values)
		if err != nil {
			return files, fmt.Errorf("writing structure %s: %w", s.Name, err)
		}
		files = append(files, res.Files...)
	}
	return files, nil
}
