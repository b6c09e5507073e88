package template

import (
	"context"
	"fmt"
	"io"

	"github.com/templer-labs/templer/internal/display"
	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/scaffold"
	"github.com/templer-labs/templer/internal/structure"
	"github.com/templer-labs/templer/internal/writer"
)

// StructureLookup resolves structure names to fresh structures.
type StructureLookup interface {
	Structure(name string) (*structure.Structure, error)
}

// RenderEnv is the output side of a run, shared by every template in a stack.
type RenderEnv struct {
	Writer     *writer.Writer
	Structures StructureLookup
	OutputDir  string
	Values     map[string]any
	Out        io.Writer
}

// Render writes t's structures and then its own files into env.OutputDir.
func (t *Template) Render(ctx context.Context, env *RenderEnv) error {
	if t.state != VariablesCollected {
		return errors.Newf(errors.ErrLifecycle, "template %s cannot render in state %s", t.Name, t.state)
	}

	for _, name := range t.RequiredStructures {
		s, err := env.Structures.Structure(name)
		if err != nil {
			return err
		}
		if _, err := s.Write(ctx, env.Writer, env.OutputDir, env.Values); err != nil {
			return err
		}
	}
	if err := t.advance(StructuresWritten); err != nil {
		return err
	}

	if t.Files != nil {
		if _, err := scaffold.Write(ctx, env.Writer, *t.Files, env.OutputDir, env.Values); err != nil {
			return fmt.Errorf("rendering template %s: %w", t.Name, err)
		}
	} else if err := env.Writer.EnsureDir(env.OutputDir); err != nil {
		return err
	}
	if t.AfterRender != nil {
		if err := t.AfterRender(ctx, env); err != nil {
			return fmt.Errorf("finishing template %s: %w", t.Name, err)
		}
	}
	if err := t.advance(FilesRendered); err != nil {
		return err
	}

	if t.PostRunMsg != "" && env.Out != nil {
		fmt.Fprint(env.Out, "\n"+display.Banner(display.WrapParagraphs(t.PostRunMsg, 74, 4)))
	}
	return t.advance(Done)
}
