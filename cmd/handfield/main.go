package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"

	"github.com/aryamehta0302/handfield/internal/engine"
	"github.com/aryamehta0302/handfield/internal/gesture"
	"github.com/aryamehta0302/handfield/internal/server"
	"github.com/aryamehta0302/handfield/internal/store"
	"github.com/aryamehta0302/handfield/internal/tray"
)

type config struct {
	Addr          string  `env:"HANDFIELD_ADDR" envDefault:":8080"`
	DataDir       string  `env:"HANDFIELD_DATA_DIR"`
	CameraID      int     `env:"HANDFIELD_CAMERA_ID" envDefault:"0"`
	MotionThresh  float64 `env:"HANDFIELD_MOTION_THRESHOLD" envDefault:"1.0"`
	ParticleCount int     `env:"HANDFIELD_PARTICLES" envDefault:"4000"`
	Workers       int     `env:"HANDFIELD_WORKERS" envDefault:"0"`
	NoTray        bool    `env:"HANDFIELD_NO_TRAY" envDefault:"false"`
}

func main() {
	fmt.Println("Handfield - Gesture-Driven Particle Field")

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dataDir = filepath.Join(homeDir, ".handfield")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "handfield.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	eng := engine.New(engine.Config{
		CameraID:      cfg.CameraID,
		MotionThresh:  cfg.MotionThresh,
		ParticleCount: cfg.ParticleCount,
		Workers:       cfg.Workers,
		Tuning:        loadTuning(st),
	})

	if err := eng.Start(); err != nil {
		log.Printf("Pipeline not started (%v); serving API only", err)
	}
	eng.SetEnabled(true)
	defer eng.Stop()

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    eng.Camera(),
		Frames:    eng,
		Tuner:     eng,
		Hands:     eng,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if cfg.NoTray {
		select {}
	}

	runTray(eng, cfg.Addr)
}

// loadTuning returns the thresholds of the active stored profile, or the
// defaults when none is active.
func loadTuning(st *store.Store) gesture.Tuning {
	id, err := st.Settings().Get(store.SettingActiveProfile)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Failed to read active profile setting: %v", err)
		}
		return gesture.DefaultTuning()
	}

	profile, err := st.Profiles().GetByID(id)
	if err != nil {
		log.Printf("Active profile %s not loadable (%v), using defaults", id, err)
		return gesture.DefaultTuning()
	}

	log.Printf("Loaded tuning profile %q", profile.Name)
	return profile.Tuning
}

// runTray wires the system tray to the engine and blocks until quit.
func runTray(eng *engine.Engine, addr string) {
	t := tray.New()

	t.OnToggle(func(enabled bool) {
		eng.SetEnabled(enabled)
	})
	t.OnViewer(func() {
		openBrowser("http://localhost" + addr)
	})
	t.OnQuit(func() {
		eng.Stop()
	})

	// Keep the gesture readout current.
	frames, cancel := eng.Subscribe()
	defer cancel()
	go func() {
		last := gesture.StateNone
		for out := range frames {
			if out.Gesture != last {
				last = out.Gesture
				t.SetGesture(string(out.Gesture))
			}
		}
	}()

	t.Run()
}

// openBrowser opens the given URL with the platform's default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.handfield/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".handfield", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
