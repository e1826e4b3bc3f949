package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verdant-systems/ecolens/pkg/adapter"
	"github.com/verdant-systems/ecolens/pkg/config"
	"github.com/verdant-systems/ecolens/pkg/habits"
	"github.com/verdant-systems/ecolens/pkg/orchestrator"
)

var (
	verboseFlag bool
	langFlag    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ecolens",
		Short: "AI research assistant for environmental problems",
		Long: `Ecolens turns a described environmental problem into a structured,
	search-grounded research report, generates 7-day sustainability plans and
	live planetary status snapshots, and tracks your sustainability habits.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "enable diagnostic logging")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "English", "output language")

	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(speakCmd())
	rootCmd.AddCommand(imageCmd())
	rootCmd.AddCommand(habitCmd())
	rootCmd.AddCommand(modelsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func reportCmd() *cobra.Command {
	var section string
	var illustrate bool
	var narrate bool
	var sizeFlag string
	var outDir string

	cmd := &cobra.Command{
		Use:   "report [problem]",
		Short: "Generate a structured research report on an environmental problem",
		Long: `Generates a search-grounded report: summary, causes, impacts,
	remediation steps and cited sources.

	With --illustrate and/or --narrate, the diagram and the narrated summary
	are generated concurrently after the report returns and written to --out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orch, err := buildOrchestrator(ctx)
			if err != nil {
				return err
			}

			report, err := orch.ResearchReport(ctx, args[0], section, langFlag)
			if err != nil {
				return friendly(err)
			}

			if err := printJSON(report); err != nil {
				return err
			}

			if !illustrate && !narrate {
				return nil
			}

			size, err := parseImageSize(sizeFlag)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			if illustrate {
				g.Go(func() error {
					uri, err := orch.Illustrate(gctx, report.VisualPrompt, size)
					if err != nil {
						return friendly(err)
					}
					path := filepath.Join(outDir, "diagram.png")
					if err := writeDataURI(path, uri); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
					return nil
				})
			}
			if narrate {
				g.Go(func() error {
					pcm, err := orch.Narrate(gctx, report.Summary)
					if err != nil {
						return friendly(err)
					}
					path := filepath.Join(outDir, "summary.wav")
					if err := writeWAV(path, pcm); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
					return nil
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&section, "section", "Climate", "report section (Climate|Water|Air|Noise|Vision)")
	cmd.Flags().BoolVar(&illustrate, "illustrate", false, "also generate the illustrative diagram")
	cmd.Flags().BoolVar(&narrate, "narrate", false, "also generate a narrated summary")
	cmd.Flags().StringVar(&sizeFlag, "size", "1K", "diagram size tier (1K|2K|4K)")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory for diagram/audio")

	return cmd
}

func planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [goal]",
		Short: "Generate a 7-day sustainability plan for a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orch, err := buildOrchestrator(ctx)
			if err != nil {
				return err
			}

			plan, err := orch.SustainabilityPlan(ctx, args[0], langFlag)
			if err != nil {
				return friendly(err)
			}
			return printJSON(plan)
		},
	}
}

func statusCmd() *cobra.Command {
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch a live planetary status snapshot for a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orch, err := buildOrchestrator(ctx)
			if err != nil {
				return err
			}

			status, err := orch.PlanetaryStatus(ctx, lat, lng, langFlag)
			if err != nil {
				return friendly(err)
			}
			return printJSON(status)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")

	return cmd
}

func speakCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "speak [text]",
		Short: "Synthesize text into a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orch, err := buildOrchestrator(ctx)
			if err != nil {
				return err
			}

			pcm, err := orch.Narrate(ctx, args[0])
			if err != nil {
				return friendly(err)
			}
			if err := writeWAV(out, pcm); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "speech.wav", "output WAV path")

	return cmd
}

func imageCmd() *cobra.Command {
	var sizeFlag string
	var out string

	cmd := &cobra.Command{
		Use:   "image [prompt]",
		Short: "Generate an illustrative diagram for a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			size, err := parseImageSize(sizeFlag)
			if err != nil {
				return err
			}

			orch, err := buildOrchestrator(ctx)
			if err != nil {
				return err
			}

			uri, err := orch.Illustrate(ctx, args[0], size)
			if err != nil {
				return friendly(err)
			}
			if err := writeDataURI(out, uri); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&sizeFlag, "size", "1K", "size tier (1K|2K|4K)")
	cmd.Flags().StringVar(&out, "out", "diagram.png", "output image path")

	return cmd
}

func habitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Track sustainability habits",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Add a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := habitStore()
			if err != nil {
				return err
			}
			habit, err := store.Add(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", habit.Name, habit.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "done [id]",
		Short: "Mark a habit done for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := habitStore()
			if err != nil {
				return err
			}
			return store.MarkDone(args[0], time.Now())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List habits with streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := habitStore()
			if err != nil {
				return err
			}
			all, err := store.List()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTREAK\tTODAY")
			now := time.Now()
			for _, h := range all {
				done := ""
				if h.DoneOn(now) {
					done = "✓"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", h.ID, h.Name, h.Streak(now), done)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := habitStore()
			if err != nil {
				return err
			}
			return store.Remove(args[0])
		},
	})

	return cmd
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Show the configured model per task",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TASK\tMODEL")
			fmt.Fprintf(w, "report\t%s\n", cfg.Models.Report)
			fmt.Fprintf(w, "plan\t%s\n", cfg.Models.Plan)
			fmt.Fprintf(w, "status\t%s\n", cfg.Models.Status)
			fmt.Fprintf(w, "speech\t%s (voice %s)\n", cfg.Models.Speech, cfg.Models.Voice)
			fmt.Fprintf(w, "image\t%s\n", cfg.Models.Image)
			return w.Flush()
		},
	}
}

func buildOrchestrator(ctx context.Context) (*orchestrator.Orchestrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := newLogger()
	if err != nil {
		return nil, err
	}

	backend, err := adapter.NewGoogleBackend(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	classifier := adapter.NewSubstringClassifier(log)
	return orchestrator.New(backend, classifier, cfg.Models, log), nil
}

func newLogger() (*zap.Logger, error) {
	if verboseFlag {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

func habitStore() (*habits.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return habits.NewStore(cfg.ConfigDir)
}

// friendly maps the two recoverable error kinds onto user-facing messages.
func friendly(err error) error {
	if adapter.IsQuotaExceeded(err) {
		return fmt.Errorf("quota exhausted: the backend rate limit was hit — wait a little or upgrade your plan")
	}
	if orchestrator.IsMalformedResponse(err) {
		return fmt.Errorf("the model returned an unusable response, try again: %w", err)
	}
	return err
}

func parseImageSize(s string) (adapter.ImageSize, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1K":
		return adapter.Image1K, nil
	case "2K":
		return adapter.Image2K, nil
	case "4K":
		return adapter.Image4K, nil
	default:
		return "", fmt.Errorf("invalid size %q (want 1K, 2K or 4K)", s)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// writeDataURI decodes a data:<mime>;base64,<payload> URI to a file.
func writeDataURI(path, uri string) error {
	_, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(uri, "data:") {
		return fmt.Errorf("not a data URI")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("failed to decode image payload: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// writeWAV wraps the backend's raw PCM buffer (24 kHz, 16-bit, mono) in a
// RIFF/WAVE header so the file is playable as-is.
func writeWAV(path string, pcm []byte) error {
	byteRate := adapter.AudioSampleRate * adapter.AudioChannels * adapter.AudioBitsPerSample / 8
	blockAlign := adapter.AudioChannels * adapter.AudioBitsPerSample / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(adapter.AudioChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(adapter.AudioSampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(adapter.AudioBitsPerSample))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return os.WriteFile(path, buf.Bytes(), 0644)
}
