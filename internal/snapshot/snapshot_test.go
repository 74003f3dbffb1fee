package snapshot

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"riptide/internal/ir"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	b := ir.NewBuilder()
	sum := b.Binary(ir.OpAdd, b.Constant(1), b.Constant(2))
	ret := b.Return(b.Start(), sum)

	var buf bytes.Buffer
	if err := Encode(&buf, b.Graph()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Version != FormatVersion {
		t.Errorf("version = %d", got.Version)
	}
	if len(got.Nodes) != b.Graph().NumLive() {
		t.Errorf("nodes = %d, want %d", len(got.Nodes), b.Graph().NumLive())
	}
	var retNode *Node
	for i := range got.Nodes {
		if got.Nodes[i].ID == uint32(ret) {
			retNode = &got.Nodes[i]
		}
	}
	if retNode == nil {
		t.Fatalf("return node missing from snapshot")
	}
	if retNode.Op != "Return" || len(retNode.Ins) != 2 {
		t.Errorf("return node = %+v", retNode)
	}
	if retNode.Ins[1] != uint32(sum) {
		t.Errorf("return value edge = %d, want %d", retNode.Ins[1], sum)
	}
}

func TestDecode_RejectsWrongVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&Graph{Version: 99}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(&buf); err == nil {
		t.Fatalf("future snapshot version accepted")
	}
}
