package main

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/suparena/entitymeta/cql"
	"github.com/suparena/entitymeta/ddb"
	"github.com/suparena/entitymeta/testmodels"
)

// models lists the bundled entity types by table name
var models = map[string]reflect.Type{
	"rating_systems": reflect.TypeFor[testmodels.RatingSystem](),
	"rating_records": reflect.TypeFor[testmodels.RatingRecord](),
}

func modelNames() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newSchemaCmd() *cobra.Command {
	var (
		target      string
		keyspace    string
		ifNotExists bool
		tableName   string
	)

	cmd := &cobra.Command{
		Use:   "schema <model>",
		Short: "Print the schema derived for a bundled model",
		Long: fmt.Sprintf(`Print the CQL DDL or the DynamoDB table definition derived for a model.
Available models: %s`, strings.Join(modelNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := models[args[0]]
			if !ok {
				return fmt.Errorf("unknown model %q (available: %s)", args[0], strings.Join(modelNames(), ", "))
			}

			c, err := loadContext()
			if err != nil {
				return err
			}
			e, err := c.Get(t)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch target {
			case "cql":
				opts := cql.TableOptions{Keyspace: keyspace, IfNotExists: ifNotExists}
				table, err := cql.CreateTable(e, opts)
				if err != nil {
					return err
				}
				indexes, err := cql.CreateIndexes(e, opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, table)
				for _, stmt := range indexes {
					fmt.Fprintln(out, stmt)
				}
				return nil
			case "dynamodb":
				indexMap, err := ddb.IndexMap(e)
				if err != nil {
					return err
				}
				// the SDK input types embed unexported smithy markers yaml cannot walk
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"indexMap": indexMap,
					"table":    ddb.TableDefinition(e, tableName),
				})
			default:
				return fmt.Errorf("unknown target %q (want cql or dynamodb)", target)
			}
		},
	}
	cmd.Flags().StringVar(&target, "target", "cql", "schema target: cql or dynamodb")
	cmd.Flags().StringVar(&keyspace, "keyspace", "", "keyspace qualifying CQL names")
	cmd.Flags().BoolVar(&ifNotExists, "if-not-exists", false, "add IF NOT EXISTS to CQL statements")
	cmd.Flags().StringVar(&tableName, "table", "", "DynamoDB table name (default: model table)")
	return cmd
}
