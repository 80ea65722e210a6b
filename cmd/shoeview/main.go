package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/shoeview/app"
	"github.com/smasonuk/shoeview/config"
	"github.com/smasonuk/shoeview/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configPath string
	modelPath  string
	logLevel   string
	noWatch    bool
)

var rootCmd = &cobra.Command{
	Use:   "shoeview [model]",
	Short: "Interactive shoe configurator",
	Long: `Shows a shoe model and lets you pick its parts, colour them and swap
the fabric texture. The model is a .gltf/.glb file or a directory of .ply
part files; without one the built-in demo shoe is shown.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "config file")
	rootCmd.Flags().StringVarP(&modelPath, "model", "m", "", "model file or PLY directory, overrides the config")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error, overrides the config")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the model when it changes on disk")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		modelPath = args[0]
	}
	if modelPath != "" {
		cfg.Model.Path = modelPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if noWatch {
		cfg.Model.Watch = false
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logging.Warn("ignoring log level", "level", cfg.LogLevel, "err", err)
	}

	scene, err := app.NewScene(cfg, nil)
	if err != nil {
		return err
	}
	defer scene.Close()

	if cfg.Model.Watch {
		if err := scene.Watch(); err != nil {
			logging.Warn("model will not reload on change", "err", err)
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(app.NewGame(scene))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("shoeview failed", "err", err)
		os.Exit(1)
	}
}
