package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ledgerworks/reclass-cli/internal/adapters/driven/index/bruteforce"
	"github.com/ledgerworks/reclass-cli/internal/adapters/driven/storage/memory"
	"github.com/ledgerworks/reclass-cli/internal/core/services"
)

// stubEmbedder returns the same vector for every text, so any stored
// record matches any query with similarity 1.
type stubEmbedder struct {
	vector []float32
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return s.vector, nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vector
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return len(s.vector) }

func (s *stubEmbedder) ModelName() string { return "stub" }

func (s *stubEmbedder) Ping(_ context.Context) error { return nil }

func (s *stubEmbedder) Close() error { return nil }

// setupTestServices wires the commands to an in-memory stack and returns
// a cleanup function restoring the previous state.
func setupTestServices() func() {
	recordStore := memory.NewRecordStore()
	embedder := &stubEmbedder{vector: []float32{1, 0, 0}}
	index := bruteforce.New(recordStore)

	oldClassify := classifyService
	oldRecord := recordService
	classifyService = services.NewClassifyService(index, embedder, 0)
	recordService = services.NewRecordService(recordStore, embedder)

	return func() {
		classifyService = oldClassify
		recordService = oldRecord
		resetCommandState()
	}
}

// resetCommandState clears flag values and changed markers between tests,
// since cobra command instances are package-level singletons.
func resetCommandState() {
	cmds := []*cobra.Command{
		searchCmd, recordAddCmd, recordListCmd, recordUpdateCmd, statsCmd,
	}
	for _, cmd := range cmds {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
