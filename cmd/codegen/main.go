package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/delaneyj/pushmodel/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	schemaKey = "schema"
	outKey    = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "codegen",
		Usage: "Generate push model setters for replicated types",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  schemaKey,
				Usage: "YAML schema describing the replicated types",
				Value: "sim/actor.yaml",
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "Output file, defaults to <schema>_gen.go next to the schema",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	schemaPath := cmd.String(schemaKey)
	log.Printf("Codegen for %s started", schemaPath)
	defer func() {
		log.Printf("Codegen for %s finished in %v", schemaPath, time.Since(start))
	}()

	schema, err := templates.LoadSchema(schemaPath)
	if err != nil {
		return err
	}

	out := cmd.String(outKey)
	if out == "" {
		out = strings.TrimSuffix(schemaPath, filepath.Ext(schemaPath)) + "_gen.go"
	}

	src, err := format.Source([]byte(templates.ReplicatedGen(schema)))
	if err != nil {
		return fmt.Errorf("format %s: %w", out, err)
	}
	if err := os.WriteFile(out, src, 0644); err != nil {
		return err
	}
	for _, t := range schema.Types {
		log.Printf("%s: %d properties", t.Name, t.NumProperties())
	}
	return nil
}
