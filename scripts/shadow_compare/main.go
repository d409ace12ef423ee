// Command shadow_compare replays offer queries against the legacy service and
// the Go service and reports status or body differences.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type target struct {
	Name       string `json:"name"`
	Query      string `json:"query"`
	Critical   bool   `json:"critical"`
	StatusOnly bool   `json:"statusOnly"`
}

type config struct {
	Path    string   `json:"path"`
	Targets []target `json:"targets"`
}

type comparison struct {
	Target         target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	FirstDiff      string
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	cfg, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)

	for _, t := range cfg.Targets {
		comp := compareTarget(client, goBase, legacyBase, cfg.Path, t)
		if comp.Error != nil || !comp.StatusMatch || !comp.BodyMatch {
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) (config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return config{}, err
	}
	if len(cfg.Targets) == 0 {
		return config{}, fmt.Errorf("no targets defined in %s", path)
	}
	if cfg.Path == "" {
		cfg.Path = "/offers"
	}
	return cfg, nil
}

func compareTarget(client *http.Client, goBase, legacyBase, path string, tgt target) comparison {
	comp := comparison{Target: tgt}

	goStatus, goBody, goDur, goErr := fetch(client, goBase, path, tgt.Query)
	legacyStatus, legacyBody, legacyDur, legacyErr := fetch(client, legacyBase, path, tgt.Query)
	comp.DurationGo = goDur
	comp.DurationLegacy = legacyDur

	if goErr != nil {
		comp.Error = fmt.Errorf("go request failed: %w", goErr)
		return comp
	}
	if legacyErr != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", legacyErr)
		return comp
	}

	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.StatusMatch = goStatus == legacyStatus

	// Error bodies differ between the services; only the status is compared.
	if tgt.StatusOnly || goStatus >= http.StatusBadRequest {
		comp.BodyMatch = true
		return comp
	}

	diff, err := diffJSON(goBody, legacyBody)
	if err != nil {
		comp.Error = err
		return comp
	}
	comp.FirstDiff = diff
	comp.BodyMatch = diff == ""
	return comp
}

func fetch(client *http.Client, base, path, rawQuery string) (int, []byte, time.Duration, error) {
	if client == nil {
		return 0, nil, 0, errors.New("nil client")
	}
	url := strings.TrimRight(base, "/") + path
	if q := strings.TrimPrefix(rawQuery, "?"); q != "" {
		url += "?" + q
	}

	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// diffJSON returns the path of the first difference between two JSON
// documents, or "" when they are equivalent.
func diffJSON(a, b []byte) (string, error) {
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return "", fmt.Errorf("decode go body: %w", err)
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return "", fmt.Errorf("decode legacy body: %w", err)
	}
	return firstDiff("$", aj, bj), nil
}

func firstDiff(path string, a, b interface{}) string {
	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok {
			return path
		}
		keys := make([]string, 0, len(av)+len(bv))
		for k := range av {
			keys = append(keys, k)
		}
		for k := range bv {
			if _, seen := av[k]; !seen {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			if d := firstDiff(path+"."+k, av[k], bv[k]); d != "" {
				return d
			}
		}
		return ""
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return path
		}
		for i := range av {
			if d := firstDiff(fmt.Sprintf("%s[%d]", path, i), av[i], bv[i]); d != "" {
				return d
			}
		}
		return ""
	default:
		if a != b {
			return path
		}
		return ""
	}
}

func printReport(results []comparison) {
	fmt.Println("Offer Shadow Compare Report")
	fmt.Println("===========================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s ?%s\n", status, res.Target.Name, res.Target.Query)
		fmt.Printf("  Go Status: %d (%s)\n", res.GoStatus, res.DurationGo)
		fmt.Printf("  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		switch {
		case res.Error != nil:
			fmt.Printf("  Error: %v\n", res.Error)
		case res.FirstDiff != "":
			fmt.Printf("  First difference at %s | Critical: %t\n", res.FirstDiff, res.Target.Critical)
		default:
			fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		}
	}
}
