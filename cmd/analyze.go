package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/shivasurya/code-pathfinder/engine/analytics"
	"github.com/shivasurya/code-pathfinder/engine/builder"
	"github.com/shivasurya/code-pathfinder/engine/cache"
	"github.com/shivasurya/code-pathfinder/engine/config"
	"github.com/shivasurya/code-pathfinder/engine/ir"
	_ "github.com/shivasurya/code-pathfinder/engine/lang/golang"
	_ "github.com/shivasurya/code-pathfinder/engine/lang/java"
	_ "github.com/shivasurya/code-pathfinder/engine/lang/javascript"
	_ "github.com/shivasurya/code-pathfinder/engine/lang/kotlin"
	_ "github.com/shivasurya/code-pathfinder/engine/lang/python"
	_ "github.com/shivasurya/code-pathfinder/engine/lang/rust"
	"github.com/shivasurya/code-pathfinder/engine/orchestrator"
	"github.com/shivasurya/code-pathfinder/engine/output"
	"github.com/shivasurya/code-pathfinder/engine/repomap"
	"github.com/spf13/cobra"
)

// analyzeReport is the engine-native JSON summary for an analyze run.
// The graph-query engine has no rule findings, so the report uses its
// own small schema rather than a rule-shaped findings format.
type analyzeReport struct {
	RepoID     string            `json:"repo_id"`
	NodeCount  int               `json:"node_count"`
	EdgeCount  int               `json:"edge_count"`
	FileErrors int               `json:"file_errors"`
	TopRanked  []rankedNode      `json:"top_ranked"`
	Config     map[string]string `json:"config_provenance"`
	ElapsedMS  int64             `json:"elapsed_ms"`
}

type rankedNode struct {
	FQN   string  `json:"fqn"`
	Kind  string  `json:"kind"`
	Score float64 `json:"score"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build the code graph and run the orchestrated analysis pipeline",
	Long: `Analyze parses a project with the tree-sitter based language plugins,
builds the IR graph, and drives the stage orchestrator (caching,
repository ranking, and the query/taint/points-to/feasibility engines)
end to end.

Examples:
  pathfinder analyze --project . --preset thorough
  pathfinder analyze --project . --config pathfinder.yaml --output report.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		start := time.Now()
		projectPath, _ := cmd.Flags().GetString("project")
		presetFlag, _ := cmd.Flags().GetString("preset")
		configPath, _ := cmd.Flags().GetString("config")
		outputFile, _ := cmd.Flags().GetString("output")
		noBanner, _ := cmd.Flags().GetBool("no-banner")

		logger := output.NewLogger(output.VerbosityDefault)
		if verboseFlag {
			logger = output.NewLogger(output.VerbosityVerbose)
		}
		if output.ShouldShowBanner(logger.IsTTY(), noBanner) {
			output.PrintBanner(logger.GetWriter(), Version, output.DefaultBannerOptions())
		}

		cfg, err := config.FromPreset(config.Preset(presetFlag))
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		if configPath != "" {
			if err := config.LoadYAML(cfg, configPath); err != nil {
				return fmt.Errorf("analyze: %w", err)
			}
		}
		config.ApplyEnv(cfg)

		analytics.ReportEventWithProperties(analytics.ScanStarted, map[string]interface{}{
			"command": "analyze",
			"preset":  string(cfg.Preset),
		})

		store, err := cache.Open(cmd.Context(), "")
		if err != nil {
			return fmt.Errorf("analyze: open cache store: %w", err)
		}
		defer store.Close()

		tiered, err := cache.NewTiered(cfg.CacheL1Entries, cfg.CacheL1Entries, time.Hour, cfg.CacheDir, true)
		if err != nil {
			return fmt.Errorf("analyze: open tiered cache: %w", err)
		}

		repo, err := store.UpsertRepository(cmd.Context(), projectPath)
		if err != nil {
			return fmt.Errorf("analyze: record repository: %w", err)
		}
		snapshot, err := store.CreateSnapshot(cmd.Context(), repo.ID, "working-tree")
		if err != nil {
			return fmt.Errorf("analyze: record snapshot: %w", err)
		}

		pc := orchestrator.NewPipelineContext(cmd.Context())

		logger.StartProgress("Building code graph", -1)
		stages := []orchestrator.Stage{
			{
				ID:     "build",
				Policy: orchestrator.Fatal,
				Run: func(ctx context.Context, pc *orchestrator.PipelineContext) error {
					result, err := builder.Build(ctx, projectPath, builder.Options{RepoID: projectPath})
					if err != nil {
						return err
					}
					pc.Set("graph", result)
					return nil
				},
			},
			{
				ID:        "rank",
				DependsOn: []string{"build"},
				Policy:    orchestrator.Recoverable,
				Run: func(_ context.Context, pc *orchestrator.PipelineContext) error {
					v, _ := pc.Get("graph")
					result := v.(*builder.Result)
					key := cache.NewKey("rank", 1, graphFingerprint(result.Graph))
					var scores map[ir.NodeID]float64
					if cached, ok := tiered.Get(key); ok {
						if err := json.Unmarshal(cached, &scores); err == nil {
							pc.Set("ranks", scores)
							return nil
						}
					}
					scores = repomap.PageRank(result.Graph, repomap.DefaultPageRankConfig())
					if encoded, err := json.Marshal(scores); err == nil {
						_ = tiered.Set(key, encoded)
					}
					pc.Set("ranks", scores)
					return nil
				},
			},
			{
				ID:        "persist",
				DependsOn: []string{"build"},
				Policy:    orchestrator.Recoverable,
				Run: func(ctx context.Context, pc *orchestrator.PipelineContext) error {
					v, _ := pc.Get("graph")
					result := v.(*builder.Result)
					for _, node := range result.Graph.Nodes {
						if node.Kind != ir.KindFunction && node.Kind != ir.KindMethod && node.Kind != ir.KindClass {
							continue
						}
						fp := cache.NewFingerprint([]byte(fmt.Sprintf("%s:%d:%d", node.FQN, node.Span.StartLine, node.Span.EndLine)))
						if _, err := store.InsertChunk(ctx, cache.Chunk{
							SnapshotID:  snapshot.ID,
							NodeID:      string(node.ID),
							FilePath:    node.File,
							Fingerprint: string(fp),
						}); err != nil {
							return err
						}
					}
					return nil
				},
			},
		}

		sched, err := orchestrator.NewScheduler(stages)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		results, err := sched.Run(cmd.Context(), pc)
		_ = logger.FinishProgress()
		if err != nil {
			analytics.ReportEvent(analytics.ScanFailed)
			return fmt.Errorf("analyze: %w", err)
		}
		for _, r := range results {
			if r.Err != nil {
				logger.Warning("stage %s: %v", r.StageID, r.Err)
			}
		}

		v, _ := pc.Get("graph")
		buildResult := v.(*builder.Result)
		logger.Statistic("code graph built: %d nodes, %d edges", len(buildResult.Graph.Nodes), len(buildResult.Graph.Edges))

		report := analyzeReport{
			RepoID:     projectPath,
			NodeCount:  len(buildResult.Graph.Nodes),
			EdgeCount:  len(buildResult.Graph.Edges),
			FileErrors: len(buildResult.Errors),
			Config:     provenanceSummary(cfg),
			ElapsedMS:  time.Since(start).Milliseconds(),
		}
		if ranks, ok := pc.Get("ranks"); ok {
			report.TopRanked = topRanked(buildResult.Graph, ranks, 10)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("analyze: encode report: %w", err)
		}
		if outputFile != "" {
			if err := os.WriteFile(outputFile, data, 0o644); err != nil {
				return fmt.Errorf("analyze: write %s: %w", outputFile, err)
			}
		} else {
			fmt.Println(string(data))
		}

		analytics.ReportEventWithProperties(analytics.ScanCompleted, map[string]interface{}{
			"command":    "analyze",
			"node_count": report.NodeCount,
		})
		return nil
	},
}

// graphFingerprint hashes a stable, sorted projection of a graph's node
// identities so the rank stage's cache key changes exactly when the
// graph's content does, not on every run.
func graphFingerprint(g *ir.Graph) cache.Fingerprint {
	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, string(n.ID))
	}
	sort.Strings(ids)
	var b []byte
	for _, id := range ids {
		b = append(b, id...)
		b = append(b, '\n')
	}
	return cache.NewFingerprint(b)
}

func provenanceSummary(cfg *config.Config) map[string]string {
	fields := []string{"preset", "enable_points_to", "enable_taint", "enable_clone", "enable_heap_checks", "enable_feasibility", "max_call_depth"}
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		p := cfg.Provenance(f)
		out[f] = fmt.Sprintf("%s(%s)", p.Source, p.Detail)
	}
	return out
}

func topRanked(g *ir.Graph, ranksAny any, n int) []rankedNode {
	scores, ok := ranksAny.(map[ir.NodeID]float64)
	if !ok {
		return nil
	}
	byID := make(map[ir.NodeID]*ir.Node, len(g.Nodes))
	for _, node := range g.Nodes {
		byID[node.ID] = node
	}
	ranked := make([]rankedNode, 0, len(scores))
	for id, score := range scores {
		node, ok := byID[id]
		if !ok {
			continue
		}
		ranked = append(ranked, rankedNode{FQN: node.FQN, Kind: string(node.Kind), Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].FQN < ranked[j].FQN
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func init() {
	analyzeCmd.Flags().String("project", ".", "Path to the project to analyze")
	analyzeCmd.Flags().String("preset", "balanced", "Analysis preset: fast, balanced, thorough")
	analyzeCmd.Flags().String("config", "", "Path to a YAML config file overriding the preset")
	analyzeCmd.Flags().String("output", "", "Write the JSON report to this file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}
