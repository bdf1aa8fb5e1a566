package generator

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgnopraxLab/modvar/message"
	"github.com/AgnopraxLab/modvar/mutation"
)

const testKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

func testOptions(t *testing.T, typ string, count int) Options {
	t.Helper()
	key, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)
	cfg := mutation.DefaultMutationConfig()
	cfg.Seed = 42
	return Options{
		Type:       typ,
		Count:      count,
		Key:        key,
		Config:     cfg,
		Expiration: uint64(time.Now().Add(time.Hour).Unix()),
	}
}

// TestGenerate_Deterministic tests that a fixed seed reproduces the batch
func TestGenerate_Deterministic(t *testing.T) {
	opts := testOptions(t, "ping", 5)

	a, err := Generate(opts)
	require.NoError(t, err)
	opts.Config = opts.Config.Clone()
	b, err := Generate(opts)
	require.NoError(t, err)

	assert.Len(t, a.Packets, 5)
	assert.Len(t, a.Hashes, 5)
	assert.Equal(t, a.Packets, b.Packets)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.Equal(t, message.Fingerprint(a.Packets), a.Fingerprint)
}

func TestGenerate_Signed(t *testing.T) {
	opts := testOptions(t, "pong", 3)
	res, err := Generate(opts)
	require.NoError(t, err)

	for i, packet := range res.Packets {
		pub, err := message.Sender(packet)
		require.NoError(t, err, "packet %d", i)
		assert.Equal(t, crypto.PubkeyToAddress(opts.Key.PublicKey), crypto.PubkeyToAddress(*pub))
		assert.Equal(t, res.Hashes[i], packet[:32])
	}
	assert.Equal(t, 3, res.Stats["packets"])
	assert.Equal(t, "pong", res.Stats["type"])
	assert.Equal(t, 3, res.Stats["mutations"])
}

// TestGenerate_Plan tests that plan transforms reach the encoded bodies
func TestGenerate_Plan(t *testing.T) {
	opts := testOptions(t, "ping", 4)
	opts.Config.MutationsPerMessage = 0
	opts.Plan = &mutation.Plan{Mutations: []mutation.PlanEntry{
		{Field: "version", Kind: "explicit", Value: "7"},
		{Field: "ttl", Kind: "xor", Value: "1"},
		{Field: "token", Kind: "delete", Position: 0, Count: 30},
	}}

	res, err := Generate(opts)
	require.NoError(t, err)

	for _, packet := range res.Packets {
		body, _, _, err := message.Decode(packet)
		require.NoError(t, err)
		ping := body.(*message.PingBody)
		assert.Equal(t, uint32(7), ping.Version)
		assert.Equal(t, uint8(defaultTTL^1), ping.TTL)
		assert.Len(t, ping.Token, 2)
		assert.Equal(t, opts.Expiration, ping.Expiration)
	}
	for _, m := range res.Mutations {
		assert.Empty(t, m)
	}
}

func TestGenerate_MutationsPerMessage(t *testing.T) {
	opts := testOptions(t, "ping", 3)
	opts.Config.MutationsPerMessage = 2

	g, err := New(opts)
	require.NoError(t, err)
	res, err := g.Generate()
	require.NoError(t, err)

	for _, m := range res.Mutations {
		assert.Len(t, m, 2)
	}
	assert.Equal(t, 6, g.Mutator().GetStats()["mutations"])
}

func TestNext_Unmutated(t *testing.T) {
	opts := testOptions(t, "pong", 1)
	opts.Config.MutationsPerMessage = 0

	g, err := New(opts)
	require.NoError(t, err)
	p, results, err := g.Next()
	require.NoError(t, err)
	assert.Nil(t, results)

	for _, f := range p.Fields() {
		assert.True(t, f.HasOriginal(), f.Name())
		assert.False(t, f.HasTransform(), f.Name())
	}
	body, err := p.Body()
	require.NoError(t, err)
	pong := body.(*message.PongBody)
	assert.Len(t, pong.ReplyTok, tokenSize)
	assert.Contains(t, pong.To, "127.0.0.1:")
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Options)
		errText string
	}{
		{"count", func(o *Options) { o.Count = 0 }, "count must be positive"},
		{"key", func(o *Options) { o.Key = nil }, "missing signing key"},
		{"type", func(o *Options) { o.Type = "findnode" }, "unknown packet type"},
		{"config", func(o *Options) { o.Config.MaxConfigParameter = 0 }, "max_config_parameter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t, "ping", 1)
			tt.modify(&opts)
			_, err := New(opts)
			assert.ErrorContains(t, err, tt.errText)
		})
	}
}

func TestGenerate_BadPlan(t *testing.T) {
	opts := testOptions(t, "ping", 2)
	opts.Plan = &mutation.Plan{Mutations: []mutation.PlanEntry{{Field: "missing", Kind: "explicit", Value: "1"}}}

	_, err := Generate(opts)
	assert.ErrorContains(t, err, "packet 0: apply plan")
	assert.ErrorContains(t, err, `unknown field "missing"`)
}
