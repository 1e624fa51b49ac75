package command

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBLPopImmediateOnNonEmptyList(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	RPush(ctx, args("RPUSH", "k", "v"))
	flush(ctx, &buf)

	BLPop(ctx, args("BLPOP", "k", "0"))
	assert.Equal(t, "*2\r\n$1\r\nk\r\n$1\r\nv\r\n", flush(ctx, &buf))
	assert.Nil(t, ctx.Block, "an immediate pop must not register a blocking wait")
}

func TestBLPopDefersOnEmptyKeys(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	BLPop(ctx, args("BLPOP", "k1", "k2", "0"))
	require.NotNil(t, ctx.Block)
	assert.Equal(t, []string{"k1", "k2"}, ctx.Block.Keys)
	assert.True(t, ctx.Block.Deadline.IsZero())
}

func TestBLPopInsideTransactionFailsFast(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)
	ctx.InTxn = true

	BLPop(ctx, args("BLPOP", "k", "0"))
	assert.Equal(t, "*-1\r\n", flush(ctx, &buf))
	assert.Nil(t, ctx.Block)
}

func TestBLPopBadTimeout(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	BLPop(ctx, args("BLPOP", "k", "-1"))
	assert.Equal(t, "-ERR timeout is negative\r\n", flush(ctx, &buf))

	BLPop(ctx, args("BLPOP", "k", "notanumber"))
	assert.Equal(t, "-ERR timeout is not an integer or out of range\r\n", flush(ctx, &buf))
}

func TestBLPopPositiveTimeoutSetsDeadline(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	before := time.Now()
	BLPop(ctx, args("BLPOP", "k", "5"))
	require.NotNil(t, ctx.Block)
	assert.True(t, ctx.Block.Deadline.After(before))
}

func TestBRPopLPushImmediate(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	RPush(ctx, args("RPUSH", "src", "v"))
	flush(ctx, &buf)

	BRPopLPush(ctx, args("BRPOPLPUSH", "src", "dst", "0"))
	assert.Equal(t, "$1\r\nv\r\n", flush(ctx, &buf))

	LRange(ctx, args("LRANGE", "dst", "0", "-1"))
	assert.Equal(t, "*1\r\n$1\r\nv\r\n", flush(ctx, &buf))
}

func TestBRPopLPushDefersWithTarget(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	BRPopLPush(ctx, args("BRPOPLPUSH", "src", "dst", "0"))
	require.NotNil(t, ctx.Block)
	assert.Equal(t, []string{"src"}, ctx.Block.Keys)
	assert.Equal(t, "dst", ctx.Block.Target)
}
