package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/picbunch/internal/bunch"
	"github.com/san-kum/picbunch/internal/config"
	"github.com/san-kum/picbunch/internal/species"
	"github.com/san-kum/picbunch/internal/storage"
	"github.com/san-kum/picbunch/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	particle   string
	name       string
	// Gaussian bunch distribution
	rmsSize     float64
	nParticles  float64
	centroid    []float64
	gammaVel    []float64
	rmsVelocity []float64
	// Line-out sampling
	axis    string
	samples int
	span    float64
	// Plot size
	plotWidth  int
	plotHeight int
	outFile    string
)

// main registers the picbunch commands and exits with status 1 on error.
func main() {
	log.SetFlags(0)
	log.SetPrefix("picbunch: ")

	rootCmd := &cobra.Command{
		Use:           "picbunch",
		Short:         "gaussian bunch to simulation species translator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".picbunch", "data directory")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "print the species rendering as JSON",
		Args:  cobra.NoArgs,
		RunE:  renderSpecies,
	}
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "show a species summary and density line-out",
		Args:  cobra.NoArgs,
		RunE:  inspectSpecies,
	}

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "assemble a species and store it as a run",
		Args:  cobra.NoArgs,
		RunE:  saveSpecies,
	}

	for _, cmd := range []*cobra.Command{renderCmd, inspectCmd, saveCmd} {
		addBunchFlags(cmd)
	}
	inspectCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	inspectCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [particle]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			particles := config.ListParticles()
			if len(args) > 0 {
				particles = args
			}
			for _, p := range particles {
				presets := config.ListPresets(p)
				if len(presets) == 0 {
					fmt.Printf("no presets for particle: %s\n", p)
					continue
				}
				fmt.Printf("presets for %s:\n", p)
				for _, name := range presets {
					fmt.Printf("  %s\n", name)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(renderCmd, inspectCmd, saveCmd, listCmd, showCmd(), presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func addBunchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&particle, "particle", config.DefaultParticle, "particle type")
	f.StringVar(&name, "species", config.DefaultSpecies, "species name")
	f.Float64Var(&rmsSize, "rms-size", config.DefaultBunchSize, "rms bunch size (m)")
	f.Float64Var(&nParticles, "particles", config.DefaultParticles, "number of physical particles")
	f.Float64SliceVar(&centroid, "centroid", []float64{0, 0, 0}, "centroid position x,y,z (m)")
	f.Float64SliceVar(&gammaVel, "gamma-velocity", []float64{0, 0, 0}, "centroid gamma*v x,y,z (m/s)")
	f.Float64SliceVar(&rmsVelocity, "rms-velocity", []float64{0, 0, 0}, "rms velocity x,y,z (m/s)")
	f.StringVar(&axis, "axis", config.DefaultLineOutAxis, "line-out axis (x, y, z)")
	f.IntVar(&samples, "samples", config.DefaultLineOutCount, "line-out samples")
	f.Float64Var(&span, "span", config.DefaultLineOutSpan, "line-out half width in rms sizes")
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(particle, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(particle))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if preset != "" {
			log.Printf("config %s overrides preset %s", configFile, preset)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("species") {
		cfg.Species = name
	}
	if flags.Changed("particle") && preset == "" {
		cfg.Particle = particle
	}
	if flags.Changed("rms-size") {
		cfg.Distribution.RMSBunchSize = rmsSize
	}
	if flags.Changed("particles") {
		cfg.Distribution.NPhysicalParticles = nParticles
	}
	if flags.Changed("centroid") {
		cfg.Distribution.CentroidPosition = centroid
	}
	if flags.Changed("gamma-velocity") {
		cfg.Distribution.CentroidVelocity = gammaVel
	}
	if flags.Changed("rms-velocity") {
		cfg.Distribution.RMSVelocity = rmsVelocity
	}
	if flags.Changed("axis") {
		cfg.LineOut.Axis = axis
	}
	if flags.Changed("samples") {
		cfg.LineOut.Samples = samples
	}
	if flags.Changed("span") {
		cfg.LineOut.Span = span
	}

	return cfg, nil
}

func assemble(cmd *cobra.Command) (*species.Species, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	params, err := cfg.BunchParameters()
	if err != nil {
		return nil, nil, err
	}
	p, err := species.LookupParticle(cfg.Particle)
	if err != nil {
		return nil, nil, err
	}

	sp, err := species.Assemble(cfg.Species, p, bunch.NewAdapter(params))
	if err != nil {
		return nil, nil, err
	}
	return sp, cfg, nil
}

func lineOut(sp *species.Species, cfg *config.Config) (storage.LineOut, error) {
	ax, err := cfg.LineOutAxis()
	if err != nil {
		return storage.LineOut{}, err
	}
	pos, density, err := sp.Density.LineOut(ax, cfg.LineOut.Samples, cfg.LineOut.Span)
	if err != nil {
		return storage.LineOut{}, err
	}
	return storage.LineOut{Axis: ax, Position: pos, Density: density}, nil
}

func renderSpecies(cmd *cobra.Command, args []string) error {
	sp, _, err := assemble(cmd)
	if err != nil {
		return err
	}
	if outFile != "" {
		if err := storage.ExportJSON(outFile, sp); err != nil {
			return err
		}
		log.Printf("wrote %s", outFile)
		return nil
	}
	return storage.Export(os.Stdout, sp)
}

func inspectSpecies(cmd *cobra.Command, args []string) error {
	sp, cfg, err := assemble(cmd)
	if err != nil {
		return err
	}
	lo, err := lineOut(sp, cfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary(sp))
	fmt.Println()
	fmt.Println(viz.PlotLineOut(&lo, plotWidth, plotHeight))
	return nil
}

func saveSpecies(cmd *cobra.Command, args []string) error {
	sp, cfg, err := assemble(cmd)
	if err != nil {
		return err
	}
	lo, err := lineOut(sp, cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(sp, lo)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("peak density: %.6g m^-3\n", sp.Density.MaxDensitySI)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSPECIES\tPARTICLE\tTIME\tRMS SIZE\tPEAK DENSITY\tGAMMA\tKEV")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4g\t%.4g\t%s\t%s\n",
			run.ID,
			run.Species,
			run.Particle,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.RMSBunchSizeSI,
			run.MaxDensitySI,
			optional(run.Gamma),
			optional(run.TemperatureKeV),
		)
	}

	return w.Flush()
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	cmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	cmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")
	return cmd
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	sp, err := st.LoadSpecies(runID)
	if err != nil {
		return err
	}
	lo, err := st.LoadLineOut(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n\n", runID)
	fmt.Println(viz.Summary(sp))
	fmt.Println()
	fmt.Println(viz.PlotLineOut(lo, plotWidth, plotHeight))
	return nil
}

func optional(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}
