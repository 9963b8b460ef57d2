package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/wfgraph"
	"github.com/meikuraledutech/wfgraph/postgres"
)

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	// Wire up the postgres implementation behind the Store interface.
	var store wfgraph.Store = postgres.New(pool)

	// 1. Create tables
	if err := store.CreateSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	fmt.Println("schema created")

	// ── An optimizer loop with a nested converger loop ────────────────
	//
	//   optimizer ──> preprocess ──> converger ──> postprocess ──> optimizer
	//                                  │    ▲
	//                                  ▼    │
	//                                 solver
	nodes := []wfgraph.Node{
		component("optimizer", true, 1, 1),
		component("preprocess", false, 1, 1),
		component("converger", true, 2, 2),
		component("solver", false, 1, 1),
		component("postprocess", false, 1, 1),
	}
	edges := []wfgraph.Edge{
		connect("optimizer", 0, wfgraph.SameLoop, "preprocess", 0, wfgraph.SameLoop),
		connect("preprocess", 0, wfgraph.SameLoop, "converger", 0, wfgraph.OuterLoop),
		connect("converger", 0, wfgraph.SameLoop, "solver", 0, wfgraph.SameLoop),
		connect("solver", 0, wfgraph.SameLoop, "converger", 1, wfgraph.SameLoop),
		connect("converger", 1, wfgraph.OuterLoop, "postprocess", 0, wfgraph.SameLoop),
		connect("postprocess", 0, wfgraph.SameLoop, "optimizer", 0, wfgraph.SameLoop),
	}

	g, err := wfgraph.BuildGraph(nodes, edges)
	if err != nil {
		log.Fatalf("build graph: %v", err)
	}

	id, err := store.SaveGraph(ctx, "", g)
	if err != nil {
		log.Fatalf("save graph: %v", err)
	}
	fmt.Printf("graph saved: %s\n", id)

	// ── Retrieve and query ────────────────────────────────────────────
	loaded, err := store.GetGraph(ctx, id)
	if err != nil {
		log.Fatalf("get graph: %v", err)
	}
	fmt.Printf("round trip equal: %v\n", wfgraph.Equal(g, loaded))

	for _, n := range []string{"preprocess", "solver", "postprocess"} {
		d, err := loaded.LoopDriver(n)
		if err != nil {
			log.Fatalf("loop driver %s: %v", n, err)
		}
		fmt.Printf("driver of %s: %s\n", n, d)
	}

	resets, err := loaded.ResetPaths("converger")
	if err != nil {
		log.Fatalf("reset paths: %v", err)
	}
	fmt.Println("\nconverger resets:")
	printJSON(resets)

	failures, err := loaded.FailurePaths("preprocess")
	if err != nil {
		log.Fatalf("failure paths: %v", err)
	}
	fmt.Println("\npreprocess failure routes:")
	printJSON(failures)

	// ── Cleanup ───────────────────────────────────────────────────────
	if err := store.DeleteGraph(ctx, id); err != nil {
		log.Fatalf("delete: %v", err)
	}
	fmt.Println("\ngraph deleted")
}

func component(id string, driver bool, inputs, outputs int) wfgraph.Node {
	n := wfgraph.Node{ID: id, Name: id, Driver: driver}
	for i := 0; i < inputs; i++ {
		n.Inputs = append(n.Inputs, wfgraph.Endpoint{ID: fmt.Sprintf("%s/in/%d", id, i), Name: fmt.Sprintf("inp_%d", i)})
	}
	for i := 0; i < outputs; i++ {
		n.Outputs = append(n.Outputs, wfgraph.Endpoint{ID: fmt.Sprintf("%s/out/%d", id, i), Name: fmt.Sprintf("out_%d", i)})
	}
	return n
}

func connect(from string, out int, fromChar wfgraph.EndpointCharacter, to string, in int, toChar wfgraph.EndpointCharacter) wfgraph.Edge {
	return wfgraph.NewEdge(from, fmt.Sprintf("%s/out/%d", from, out), fromChar, to, fmt.Sprintf("%s/in/%d", to, in), toChar)
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
