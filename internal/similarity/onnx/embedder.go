// Package onnx implements the similarity provider on top of a local
// sentence-embedding model served through onnxruntime. Names are embedded
// with mean pooling over the final hidden states and compared by cosine
// similarity, matching the behavior of the hosted sentence-transformers
// models this replaces.
package onnx

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Config locates the model bundle and fixes the session geometry.
type Config struct {
	// BundleDir contains model.onnx and vocab.txt.
	BundleDir string
	// SeqLen is the tokenizer sequence length. Defaults to 64; names are
	// short, so a small window keeps inference cheap.
	SeqLen int
	// HiddenSize is the embedding width of the model (384 for MiniLM-L6).
	HiddenSize int
}

// Embedder wraps one ONNX session. Session tensors are reused across calls,
// so all inference is serialized behind a mutex.
type Embedder struct {
	session   *ort.AdvancedSession
	tokenizer *wordPieceTokenizer
	seqLen    int
	hidden    int

	inputIDs      *ort.Tensor[int64]
	attentionMask *ort.Tensor[int64]
	output        *ort.Tensor[float32]

	mu sync.Mutex
}

// New initializes the onnxruntime environment and loads the model bundle.
// A missing or unreadable bundle is a startup failure, not a degraded mode.
func New(cfg Config) (*Embedder, error) {
	if cfg.BundleDir == "" {
		return nil, errors.New("model bundle dir is empty")
	}
	if cfg.SeqLen <= 0 {
		cfg.SeqLen = 64
	}
	if cfg.HiddenSize <= 0 {
		cfg.HiddenSize = 384
	}

	if lib := resolveSharedLibraryPath(cfg.BundleDir); lib != "" {
		ort.SetSharedLibraryPath(lib)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	modelPath := filepath.Join(cfg.BundleDir, "model.onnx")
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file missing at %s: %w", modelPath, err)
	}
	tokenizer, err := loadWordPieceTokenizer(filepath.Join(cfg.BundleDir, "vocab.txt"))
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	inputShape := ort.NewShape(1, int64(cfg.SeqLen))
	inputIDs, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("allocate input_ids tensor: %w", err)
	}
	attnMask, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("allocate attention_mask tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(cfg.SeqLen), int64(cfg.HiddenSize)))
	if err != nil {
		return nil, fmt.Errorf("allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"last_hidden_state"},
		[]ort.Value{inputIDs, attnMask},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &Embedder{
		session:       session,
		tokenizer:     tokenizer,
		seqLen:        cfg.SeqLen,
		hidden:        cfg.HiddenSize,
		inputIDs:      inputIDs,
		attentionMask: attnMask,
		output:        output,
	}, nil
}

// Similarity embeds both strings and returns their cosine similarity clamped
// to [0,1].
func (e *Embedder) Similarity(ctx context.Context, a, b string) (float64, error) {
	va, err := e.embed(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := e.embed(ctx, b)
	if err != nil {
		return 0, err
	}
	return cosine(va, vb), nil
}

// BatchSimilarity embeds the query once and scores it against each candidate,
// preserving input order.
func (e *Embedder) BatchSimilarity(ctx context.Context, query string, candidates []string) ([]float64, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	vq, err := e.embed(ctx, query)
	if err != nil {
		return nil, err
	}
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		vc, err := e.embed(ctx, c)
		if err != nil {
			return nil, err
		}
		scores[i] = cosine(vq, vc)
	}
	return scores, nil
}

// Close releases the session and its tensors.
func (e *Embedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Destroy()
	e.inputIDs.Destroy()
	e.attentionMask.Destroy()
	e.output.Destroy()
	return nil
}

func (e *Embedder) embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids, attn := e.tokenizer.encode(text, e.seqLen)

	e.mu.Lock()
	defer e.mu.Unlock()

	copy(e.inputIDs.GetData(), ids)
	copy(e.attentionMask.GetData(), attn)

	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("run embedding session: %w", err)
	}

	// Mean pooling over non-padding positions.
	hidden := e.output.GetData()
	vec := make([]float32, e.hidden)
	var count float32
	for pos := 0; pos < e.seqLen; pos++ {
		if attn[pos] == 0 {
			continue
		}
		count++
		base := pos * e.hidden
		for d := 0; d < e.hidden; d++ {
			vec[d] += hidden[base+d]
		}
	}
	if count > 0 {
		for d := range vec {
			vec[d] /= count
		}
	}
	return vec, nil
}

// cosine returns the cosine similarity of two vectors clamped to [0,1].
// Embedding similarities below zero carry no signal for name matching.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// resolveSharedLibraryPath locates the onnxruntime shared library, preferring
// an explicit override, then a copy shipped inside the bundle.
func resolveSharedLibraryPath(bundleDir string) string {
	if p := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH"); p != "" {
		return p
	}
	name := "libonnxruntime.so"
	switch runtime.GOOS {
	case "darwin":
		name = "libonnxruntime.dylib"
	case "windows":
		name = "onnxruntime.dll"
	}
	candidate := filepath.Join(bundleDir, "lib", name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
