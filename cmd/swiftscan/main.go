package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arclight-net/swiftscan/internal/address"
	"github.com/arclight-net/swiftscan/internal/config"
	"github.com/arclight-net/swiftscan/internal/engine"
	"github.com/arclight-net/swiftscan/internal/handoff"
	"github.com/arclight-net/swiftscan/internal/model"
	"github.com/arclight-net/swiftscan/internal/output"
	"github.com/arclight-net/swiftscan/internal/payloads"
	"github.com/arclight-net/swiftscan/internal/portstrategy"
	"github.com/arclight-net/swiftscan/internal/socketiter"
)

var (
	flagPorts        []int
	flagPortRanges   []string
	flagExcludePorts []int
	flagExcludeAddrs []string
	flagBatchSize    int
	flagTimeoutMS    int
	flagTries        int
	flagRandom       bool
	flagUDP          bool
	flagGreppable    bool
	flagAccessible   bool
	flagResolver     string
	flagBatchFile    string
	flagJSON         bool
	flagNmap         bool
)

func main() {
	log.SetFlags(log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "swiftscan [addresses...]",
	Short:   "A fast, concurrent TCP/UDP port scanner",
	Args:    cobra.ArbitraryArgs,
	RunE:    runScan,
	Version: "0.1.0",
}

func init() {
	f := rootCmd.Flags()
	f.IntSliceVar(&flagPorts, "ports", nil, "Explicit port list (takes precedence over --range)")
	f.StringSliceVar(&flagPortRanges, "range", nil, "Port ranges as start-end (e.g. 1-1000), repeatable")
	f.IntSliceVar(&flagExcludePorts, "exclude-ports", nil, "Ports filtered out after ordering")
	f.StringSliceVar(&flagExcludeAddrs, "exclude-addresses", nil, "Addresses removed from the resolved IP list")
	f.IntVar(&flagBatchSize, "batch-size", 4500, "Maximum in-flight probes")
	f.IntVar(&flagTimeoutMS, "timeout", 1500, "Per-attempt timeout in milliseconds")
	f.IntVar(&flagTries, "tries", 1, "Attempts per socket")
	f.BoolVar(&flagRandom, "random", false, "Randomize port iteration order")
	f.BoolVar(&flagUDP, "udp", false, "Use UDP probes instead of TCP")
	f.BoolVar(&flagGreppable, "greppable", false, "Suppress per-hit output; print an aggregate at the end")
	f.BoolVar(&flagAccessible, "accessible", false, "Plain-text, screen-reader-friendly output")
	f.StringVar(&flagResolver, "resolver", "", "Comma list of DNS IPs, or a path to such a file")
	f.StringVar(&flagBatchFile, "batch-file", "", "YAML batch file (overrides flags and positional addresses)")
	f.BoolVar(&flagJSON, "json", false, "Emit a JSON report instead of console output")
	f.BoolVar(&flagNmap, "nmap", false, "Hand open sockets off to nmap for service detection")
}

func runScan(cmd *cobra.Command, args []string) error {
	runID := uuid.New().String()

	cfg, err := buildConfig(args)
	if err != nil {
		return fmt.Errorf("swiftscan: %w", err)
	}

	log.Printf("scan %s: %d address token(s), batch_size=%d tries=%d udp=%v",
		runID, len(cfg.Addresses), cfg.BatchSize, cfg.Tries, cfg.UDP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Printf("scan %s: interrupted, draining in-flight probes", runID)
		cancel()
	}()

	formatter := output.NewConsole(os.Stdout, cfg.Greppable, cfg.Accessible)
	var jsonFmt *output.JSON
	if flagJSON {
		protocol := "tcp"
		if cfg.UDP {
			protocol = "udp"
		}
		jsonFmt = output.NewJSON(protocol, nil)
	}

	var warner address.Warner = formatter
	if jsonFmt != nil {
		warner = jsonFmt
	}

	resolver := address.New(cfg.ResolverConfig(), cfg.Timeout, warner)
	ips := resolver.Resolve(ctx, cfg.Addresses)
	if len(cfg.ExcludeAddresses) > 0 {
		excluded := resolver.Resolve(ctx, cfg.ExcludeAddresses)
		ips = subtractIPs(ips, excluded)
	}

	strategy, err := buildStrategy(cfg)
	if err != nil {
		return fmt.Errorf("swiftscan: %w", err)
	}

	excludePorts := make([]int, len(cfg.ExcludePorts))
	for i, p := range cfg.ExcludePorts {
		excludePorts[i] = int(p)
	}
	it := socketiter.New(ips, strategy, excludePorts)

	var prober engine.Prober
	if cfg.UDP {
		prober = engine.UDPProber{Registry: payloads.Default()}
	} else {
		prober = engine.TCPProber{}
	}

	var sink engine.Sink = formatter
	if jsonFmt != nil {
		sink = jsonFmt
	}

	eng := engine.New(engine.NewConfig(cfg.BatchSize, cfg.Timeout, cfg.Tries, cfg.UDP), prober, sink)
	errs := engine.NewErrorSet(len(ips))

	start := time.Now()
	open, err := eng.Run(ctx, it, errs)
	elapsed := time.Since(start)

	if jsonFmt != nil {
		if wErr := jsonFmt.Write(os.Stdout, errs.Reasons()); wErr != nil {
			return wErr
		}
		if err != nil {
			log.Printf("scan %s: aborted: %v", runID, err)
		}
		return err
	}
	formatter.PrintSummary(func() string { return elapsed.Round(time.Millisecond).String() })

	if err != nil {
		log.Printf("scan %s: aborted: %v", runID, err)
		return err
	}

	if flagNmap && len(open) > 0 {
		n := handoff.New(handoff.WithServiceInfo())
		if _, hErr := n.Run(ctx, open); hErr != nil {
			log.Printf("scan %s: nmap hand-off failed: %v", runID, hErr)
		}
	}
	return nil
}

func buildConfig(args []string) (*config.Scan, error) {
	if flagBatchFile != "" {
		return config.LoadFile(flagBatchFile)
	}

	ranges, err := parsePortRanges(flagPortRanges)
	if err != nil {
		return nil, err
	}

	order := config.OrderSerial
	if flagRandom {
		order = config.OrderRandom
	}

	opts := []config.Option{
		config.WithExcludePorts(flagExcludePorts),
		config.WithExcludeAddresses(flagExcludeAddrs),
		config.WithBatchSize(flagBatchSize),
		config.WithTimeout(time.Duration(flagTimeoutMS) * time.Millisecond),
		config.WithTries(flagTries),
		config.WithScanOrder(order),
		config.WithUDP(flagUDP),
		config.WithGreppable(flagGreppable),
		config.WithAccessible(flagAccessible),
		config.WithResolver(flagResolver),
	}
	if len(flagPorts) > 0 {
		opts = append(opts, config.WithPorts(flagPorts))
	}
	if len(ranges) > 0 {
		opts = append(opts, config.WithPortRanges(ranges))
	}

	return config.New(args, opts...)
}

func buildStrategy(cfg *config.Scan) (portstrategy.Strategy, error) {
	order := portstrategy.Serial
	if cfg.ScanOrder == config.OrderRandom {
		order = portstrategy.Random
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if len(cfg.Ports) > 0 {
		return portstrategy.NewManual(cfg.Ports, order, rng), nil
	}
	return portstrategy.NewRange(cfg.PortRanges, order, rng), nil
}

func parsePortRanges(raw []string) ([][2]int, error) {
	var ranges [][2]int
	for _, r := range raw {
		var start, end int
		if _, err := fmt.Sscanf(r, "%d-%d", &start, &end); err != nil {
			return nil, fmt.Errorf("invalid --range %q: %w", r, err)
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges, nil
}

func subtractIPs(all, excluded []net.IP) []net.IP {
	skip := make(map[string]struct{}, len(excluded))
	for _, ip := range excluded {
		skip[ip.String()] = struct{}{}
	}
	out := make([]net.IP, 0, len(all))
	for _, ip := range all {
		if _, ok := skip[ip.String()]; ok {
			continue
		}
		out = append(out, ip)
	}
	return out
}
