// Command legitcs is a small CLI host exercising the legitcs engine
// end to end: render a template against an HDF data file, dump its
// compiled syntax tree, or just check it for parse errors.
//
// Grounded on mdhender-guanabana's cmd/guanabana (a CLI front end for
// its own library) and moby-moby's cmd/docker cobra usage — no direct
// teacher analogue exists, since the teacher ships no cmd/ of its own.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/legitcs/legitcs/engine"
	"github.com/legitcs/legitcs/hdc"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "legitcs",
		Short: "Render, dump, or check ClearSilver-style templates",
	}
	root.AddCommand(newRenderCmd(), newDumpCmd(), newCheckCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a template to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := buildEngine(args[0], dataPath)
			if err != nil {
				return err
			}
			return e.Render(func(s string) error {
				_, err := fmt.Print(s)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "HDF data file")
	return cmd
}

func newDumpCmd() *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:   "dump <template>",
		Short: "Print the compiled syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := buildEngine(args[0], dataPath)
			if err != nil {
				return err
			}
			return e.Dump(func(s string) error {
				_, err := fmt.Print(s)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "HDF data file")
	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <template>",
		Short: "Parse a template and report errors without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, name, err := buildEngine(args[0], "")
			if err != nil {
				return err
			}
			fmt.Printf("%s: ok\n", name)
			return nil
		},
	}
	return cmd
}

// buildEngine loads an optional HDF data file, constructs an engine
// rooted at the template's directory (for relative `include`
// resolution), and parses the named template file.
func buildEngine(templatePath, dataPath string) (*engine.Engine, string, error) {
	data := hdc.New()
	if dataPath != "" {
		f, err := os.Open(dataPath)
		if err != nil {
			return nil, "", fmt.Errorf("open %s: %w", dataPath, err)
		}
		defer f.Close()
		loaded, err := hdc.ReadFile(f)
		if err != nil {
			return nil, "", fmt.Errorf("parse %s: %w", dataPath, err)
		}
		data = loaded
	}

	logger := logrus.New()
	inc := osIncluder{baseDir: filepath.Dir(templatePath)}
	e := engine.New(data, engine.WithIncluder(inc), engine.WithLogger(logger))

	content, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", templatePath, err)
	}
	if err := e.ParseString(templatePath, string(content)); err != nil {
		return nil, "", err
	}
	return e, templatePath, nil
}

// osIncluder resolves include paths against the filesystem, relative
// to baseDir when the path isn't already absolute.
type osIncluder struct {
	baseDir string
}

func (o osIncluder) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.baseDir, path)
}

func (o osIncluder) Exists(path string) bool {
	_, err := os.Stat(o.resolve(path))
	return err == nil
}

func (o osIncluder) ReadInclude(path string) (string, error) {
	content, err := os.ReadFile(o.resolve(path))
	if err != nil {
		return "", err
	}
	return string(content), nil
}
