package cli

import (
	"runtime"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vertebra/internal/outline"
	"vertebra/internal/store"
)

type fmtResult struct {
	File    string `json:"file" yaml:"file"`
	Changed bool   `json:"changed" yaml:"changed"`
	Nodes   int    `json:"nodes" yaml:"nodes"`
	// Lossy is set when formatting would drop the lines before the first
	// bullet. Such files are left alone unless --force is given.
	Lossy bool `json:"lossy,omitempty" yaml:"lossy,omitempty"`
}

func newFmtCmd(app *App) *cobra.Command {
	var (
		check  bool
		backup bool
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Rewrite documents in canonical form (indentation, escapes, bullets)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				mu  sync.Mutex
				out = make([]fmtResult, 0, len(args))
			)
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(runtime.GOMAXPROCS(0))
			for _, arg := range args {
				g.Go(func() error {
					path := app.resolvePath(arg)
					fs := store.FileStore{Path: path}
					text, err := fs.LoadText(gctx)
					if err != nil {
						return err
					}
					nodes := outline.Decode(text)
					canon := outline.Encode(nodes)
					res := fmtResult{
						File:    arg,
						Changed: canon != text,
						Nodes:   outline.Count(nodes),
						Lossy:   len(outline.Preamble(text)) > 0,
					}
					if res.Changed && !check && (!res.Lossy || force) {
						if backup {
							if err := store.CopyFile(path, path+".bak"); err != nil {
								return err
							}
						}
						if err := fs.SaveText(gctx, canon); err != nil {
							return err
						}
						app.logger().Info("formatted", zap.String("file", path))
					}
					mu.Lock()
					out = append(out, res)
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return writeErr(cmd, err)
			}
			sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })

			if err := writeOut(cmd, app, map[string]any{"data": out}); err != nil {
				return err
			}
			if !force {
				var lossy []string
				for _, r := range out {
					if r.Lossy {
						lossy = append(lossy, r.File)
					}
				}
				if len(lossy) > 0 {
					return writeErr(cmd, lossyFormatError{files: lossy})
				}
			}
			if check {
				var dirty []string
				for _, r := range out {
					if r.Changed {
						dirty = append(dirty, r.File)
					}
				}
				if len(dirty) > 0 {
					return writeErr(cmd, needsFormatError{files: dirty})
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Report files that would change without writing them (non-zero exit if any)")
	cmd.Flags().BoolVar(&backup, "backup", false, "Keep the previous contents as <file>.bak")
	cmd.Flags().BoolVar(&force, "force", false, "Format files even when text before the first bullet would be dropped")
	return cmd
}
