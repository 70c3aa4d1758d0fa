package memo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{input: "fifo", want: PolicyFIFO},
		{input: "lru", want: PolicyLRU},
		{input: "lfu", want: PolicyLFU},
		{input: "arc", want: PolicyARC},
		{input: "random", want: PolicyRandom},
		{input: "tlru", want: PolicyTLRU},
		{input: "LRU", want: PolicyLRU},
		{input: "TlRu", want: PolicyTLRU},
		{input: "mru", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicyString(t *testing.T) {
	for _, p := range []Policy{PolicyFIFO, PolicyLRU, PolicyLFU, PolicyARC, PolicyRandom, PolicyTLRU} {
		parsed, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	assert.Equal(t, "unknown", Policy(99).String())
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		input   string
		want    Scope
		wantErr bool
	}{
		{input: "shared-locked", want: ScopeSharedLocked},
		{input: "shared_locked", want: ScopeSharedLocked},
		{input: "global", want: ScopeSharedLocked},
		{input: "shared-lockfree", want: ScopeSharedLockFree},
		{input: "lockfree", want: ScopeSharedLockFree},
		{input: "isolated", want: ScopeIsolated},
		{input: "local", want: ScopeIsolated},
		{input: "Isolated", want: ScopeIsolated},
		{input: "distributed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScope(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTTL(t *testing.T) {
	ttl, err := ParseTTL("90s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, ttl)

	ttl, err = ParseTTL("5m")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)

	_, err = ParseTTL("soon")
	assert.Error(t, err)

	_, err = ParseTTL("-10s")
	assert.Error(t, err, "negative durations are rejected")
}

func TestParseMemorySize(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{input: "100MB", want: 100 * 1000 * 1000},
		{input: "1KiB", want: 1024},
		{input: "42", want: 42},
		{input: "many bytes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMemorySize(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "zero config", cfg: Config{}},
		{name: "full config", cfg: Config{
			Name:            "c",
			Limit:           10,
			MaxMemory:       1024,
			Policy:          PolicyTLRU,
			FrequencyWeight: 1.5,
			TTL:             time.Minute,
			Scope:           ScopeSharedLockFree,
		}},
		{name: "negative limit", cfg: Config{Limit: -1}, wantErr: true},
		{name: "negative ttl", cfg: Config{TTL: -time.Second}, wantErr: true},
		{name: "negative frequency weight", cfg: Config{FrequencyWeight: -0.5}, wantErr: true},
		{name: "policy out of range", cfg: Config{Policy: Policy(42)}, wantErr: true},
		{name: "scope out of range", cfg: Config{Scope: Scope(42)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfigSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	assert.Equal(t, 1.0, cfg.FrequencyWeight)
	assert.NotNil(t, cfg.Estimator)
	assert.NotNil(t, cfg.Logger)

	custom := func(any) uint64 { return 7 }
	cfg = Config{FrequencyWeight: 2.5, Estimator: custom}
	cfg.SetDefaults()
	assert.Equal(t, 2.5, cfg.FrequencyWeight, "explicit values survive defaulting")
	assert.Equal(t, uint64(7), cfg.Estimator(nil))
}
