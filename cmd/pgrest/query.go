package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/edgeflare/pgrest/pkg/httputil"
	"github.com/edgeflare/pgrest/pkg/postgrest"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var getCmd = &cobra.Command{
	Use:   "get <table>",
	Short: "Select rows from a table or view",
	Args:  cobra.ExactArgs(1),
	Run:   runGet,
}

var insertCmd = &cobra.Command{
	Use:   "insert <table>",
	Short: "Insert rows into a table",
	Args:  cobra.ExactArgs(1),
	Run:   runInsert,
}

var updateCmd = &cobra.Command{
	Use:   "update <table>",
	Short: "Update rows matched by filters",
	Args:  cobra.ExactArgs(1),
	Run:   runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <table>",
	Short: "Delete rows matched by filters",
	Args:  cobra.ExactArgs(1),
	Run:   runDelete,
}

var rpcCmd = &cobra.Command{
	Use:   "rpc <function>",
	Short: "Call a stored procedure",
	Args:  cobra.ExactArgs(1),
	Run:   runRpc,
}

func init() {
	getCmd.Flags().String("select", "", "Comma-separated columns to fetch")
	getCmd.Flags().StringArray("filter", nil, "Filter as column=op.value, e.g. id=eq.1 (repeatable)")
	getCmd.Flags().String("order", "", "Order by column, append .desc for descending")
	getCmd.Flags().Int("limit", 0, "Limit number of rows")
	getCmd.Flags().Bool("single", false, "Expect exactly one row")
	getCmd.Flags().String("count", "", "Request row count (exact, planned, estimated)")

	insertCmd.Flags().String("data", "", "Row JSON, or @file to read from a file")
	insertCmd.Flags().Bool("upsert", false, "Merge on conflict instead of failing")
	insertCmd.Flags().Bool("minimal", false, "Do not return the affected rows")

	updateCmd.Flags().String("data", "", "Changed fields as JSON")
	updateCmd.Flags().StringArray("filter", nil, "Filter as column=op.value (repeatable)")
	updateCmd.Flags().Bool("minimal", false, "Do not return the affected rows")

	deleteCmd.Flags().StringArray("filter", nil, "Filter as column=op.value (repeatable)")
	deleteCmd.Flags().Bool("minimal", false, "Do not return the affected rows")

	rpcCmd.Flags().String("args", "", "Function arguments as JSON")

	rootCmd.AddCommand(getCmd, insertCmd, updateCmd, deleteCmd, rpcCmd)
}

func newClient() *postgrest.Client {
	opts := []httputil.Option{httputil.WithTimeout(cfg.Timeout)}
	if logger != nil {
		opts = append(opts, httputil.WithLogger(logger))
	}
	client, err := postgrest.New(cfg.BaseURL, opts...)
	if err != nil {
		logger.Fatal("invalid endpoint", zap.String("url", cfg.BaseURL), zap.Error(err))
	}
	if cfg.Token != "" {
		client.Auth(cfg.Token)
	}
	if cfg.Schema != "" {
		client.Schema(cfg.Schema)
	}
	for key, value := range cfg.Headers {
		client.SetHeader(key, value)
	}
	return client
}

// applyFilters parses repeated column=op.value flags onto the builder.
func applyFilters(f *postgrest.FilterBuilder, filters []string) error {
	for _, raw := range filters {
		column, predicate, found := strings.Cut(raw, "=")
		if !found {
			return fmt.Errorf("invalid filter %q, want column=op.value", raw)
		}
		op, criteria, found := strings.Cut(predicate, ".")
		if !found {
			return fmt.Errorf("invalid predicate %q, want op.value", predicate)
		}
		f.Filter(column, op, criteria)
	}
	return nil
}

func runGet(cmd *cobra.Command, args []string) {
	client := newClient()

	var columns []string
	if sel, _ := cmd.Flags().GetString("select"); sel != "" {
		columns = strings.Split(sel, ",")
	}

	q := client.From(args[0]).Select(columns...)
	if count, _ := cmd.Flags().GetString("count"); count != "" {
		method := postgrest.CountMethod(count)
		if !method.IsValid() {
			logger.Fatal("invalid count method, want exact, planned or estimated",
				zap.String("count", count))
		}
		q.Count(method)
	}

	filters, _ := cmd.Flags().GetStringArray("filter")
	if err := applyFilters(&q.FilterBuilder, filters); err != nil {
		logger.Fatal("bad filter", zap.Error(err))
	}

	if order, _ := cmd.Flags().GetString("order"); order != "" {
		column, desc := strings.CutSuffix(order, ".desc")
		q.Order(column, &postgrest.OrderOpts{Descending: desc})
	}
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		q.Limit(limit, "")
	}

	if single, _ := cmd.Flags().GetBool("single"); single {
		res, err := q.Single().Execute(context.Background())
		if err != nil {
			logger.Fatal("query failed", zap.Error(err))
		}
		printJSON(res.Data)
		return
	}

	res, err := q.Execute(context.Background())
	if err != nil {
		logger.Fatal("query failed", zap.Error(err))
	}
	if res.Count != nil {
		logger.Info("row count", zap.Int64("count", *res.Count))
	}
	printJSON(res.Data)
}

func runInsert(cmd *cobra.Command, args []string) {
	client := newClient()
	row := readData(cmd)

	opts := []postgrest.QueryOption{}
	if upsert, _ := cmd.Flags().GetBool("upsert"); upsert {
		opts = append(opts, postgrest.WithUpsert())
	}
	if minimal, _ := cmd.Flags().GetBool("minimal"); minimal {
		opts = append(opts, postgrest.WithReturning(postgrest.ReturnMinimal))
	}

	res, err := client.From(args[0]).Insert(row, opts...).Execute(context.Background())
	if err != nil {
		logger.Fatal("insert failed", zap.Error(err))
	}
	printJSON(res.Data)
}

func runUpdate(cmd *cobra.Command, args []string) {
	client := newClient()
	row := readData(cmd)

	opts := []postgrest.QueryOption{}
	if minimal, _ := cmd.Flags().GetBool("minimal"); minimal {
		opts = append(opts, postgrest.WithReturning(postgrest.ReturnMinimal))
	}

	q := client.From(args[0]).Update(row, opts...)
	filters, _ := cmd.Flags().GetStringArray("filter")
	if len(filters) == 0 {
		logger.Fatal("refusing to update without filters")
	}
	if err := applyFilters(q, filters); err != nil {
		logger.Fatal("bad filter", zap.Error(err))
	}

	res, err := q.Execute(context.Background())
	if err != nil {
		logger.Fatal("update failed", zap.Error(err))
	}
	printJSON(res.Data)
}

func runDelete(cmd *cobra.Command, args []string) {
	client := newClient()

	opts := []postgrest.QueryOption{}
	if minimal, _ := cmd.Flags().GetBool("minimal"); minimal {
		opts = append(opts, postgrest.WithReturning(postgrest.ReturnMinimal))
	}

	q := client.From(args[0]).Delete(opts...)
	filters, _ := cmd.Flags().GetStringArray("filter")
	if len(filters) == 0 {
		logger.Fatal("refusing to delete without filters")
	}
	if err := applyFilters(q, filters); err != nil {
		logger.Fatal("bad filter", zap.Error(err))
	}

	res, err := q.Execute(context.Background())
	if err != nil {
		logger.Fatal("delete failed", zap.Error(err))
	}
	printJSON(res.Data)
}

func runRpc(cmd *cobra.Command, args []string) {
	client := newClient()

	var fnArgs map[string]any
	if raw, _ := cmd.Flags().GetString("args"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &fnArgs); err != nil {
			logger.Fatal("invalid function arguments", zap.Error(err))
		}
	}

	res, err := client.Rpc(args[0], fnArgs).Execute(context.Background())
	if err != nil {
		logger.Fatal("rpc failed", zap.Error(err))
	}
	printJSON(res.Data)
}

// readData reads the --data flag, supporting @file syntax.
func readData(cmd *cobra.Command) any {
	raw, _ := cmd.Flags().GetString("data")
	if raw == "" {
		logger.Fatal("--data is required")
	}
	if strings.HasPrefix(raw, "@") {
		content, err := os.ReadFile(raw[1:])
		if err != nil {
			logger.Fatal("cannot read data file", zap.Error(err))
		}
		raw = string(content)
	}

	var row any
	if err := json.Unmarshal([]byte(raw), &row); err != nil {
		logger.Fatal("invalid row JSON", zap.Error(err))
	}
	return row
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatal("cannot render output", zap.Error(err))
	}
	fmt.Println(string(out))
}
