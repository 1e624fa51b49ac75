package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSInterSmallestFirst(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	SAdd(ctx, args("SADD", "a", "1", "2", "3"))
	flush(ctx, &buf)
	SAdd(ctx, args("SADD", "b", "2", "3", "4"))
	flush(ctx, &buf)

	SInter(ctx, args("SINTER", "a", "b"))
	out := flush(ctx, &buf)
	assert.Contains(t, out, "*2\r\n")
	assert.Contains(t, out, "$1\r\n2\r\n")
	assert.Contains(t, out, "$1\r\n3\r\n")
}

func TestSInterWithMissingKeyIsEmpty(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	SAdd(ctx, args("SADD", "a", "1"))
	flush(ctx, &buf)

	SInter(ctx, args("SINTER", "a", "nope"))
	assert.Equal(t, "*0\r\n", flush(ctx, &buf))
}

func TestSInterStoreDeletesDestOnEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	SAdd(ctx, args("SADD", "dst", "stale"))
	flush(ctx, &buf)
	SAdd(ctx, args("SADD", "a", "1"))
	flush(ctx, &buf)

	SInterStore(ctx, args("SINTERSTORE", "dst", "a", "nope"))
	assert.Equal(t, ":0\r\n", flush(ctx, &buf))

	_, ok := ctx.DB.Lookup("dst")
	assert.False(t, ok, "an empty intersection result must delete the destination key")
}

func TestSUnion(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	SAdd(ctx, args("SADD", "a", "1", "2"))
	flush(ctx, &buf)
	SAdd(ctx, args("SADD", "b", "2", "3"))
	flush(ctx, &buf)

	SUnion(ctx, args("SUNION", "a", "b"))
	out := flush(ctx, &buf)
	assert.Contains(t, out, "*3\r\n")
}

func TestSDiff(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	SAdd(ctx, args("SADD", "a", "1", "2", "3"))
	flush(ctx, &buf)
	SAdd(ctx, args("SADD", "b", "2"))
	flush(ctx, &buf)

	SDiff(ctx, args("SDIFF", "a", "b"))
	out := flush(ctx, &buf)
	assert.Contains(t, out, "*2\r\n")
	assert.Contains(t, out, "$1\r\n1\r\n")
	assert.Contains(t, out, "$1\r\n3\r\n")
	assert.NotContains(t, out, "$1\r\n2\r\n")
}

func TestSDiffStoreWritesDestination(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	SAdd(ctx, args("SADD", "a", "1", "2"))
	flush(ctx, &buf)
	SAdd(ctx, args("SADD", "b", "2"))
	flush(ctx, &buf)

	SDiffStore(ctx, args("SDIFFSTORE", "dst", "a", "b"))
	assert.Equal(t, ":1\r\n", flush(ctx, &buf))

	SIsMember(ctx, args("SISMEMBER", "dst", "1"))
	assert.Equal(t, ":1\r\n", flush(ctx, &buf))
}

func TestSetAlgebraWrongType(t *testing.T) {
	var buf bytes.Buffer
	ctx := newTestContext(&buf)

	RPush(ctx, args("RPUSH", "notaset", "v"))
	flush(ctx, &buf)
	SAdd(ctx, args("SADD", "a", "1"))
	flush(ctx, &buf)

	SInter(ctx, args("SINTER", "a", "notaset"))
	assert.Equal(t, "-WRONGTYPE Operation against a key holding the wrong kind of value\r\n", flush(ctx, &buf))
}
