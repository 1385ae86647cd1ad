// Package benchmarks provides performance benchmarks for per-frame updates.
package benchmarks

import (
	"fmt"
	"testing"

	"github.com/comalice/hostanim"
	"github.com/comalice/hostanim/deferred"
	"github.com/comalice/hostanim/easing"
)

func BenchmarkHostUpdate(b *testing.B) {
	for _, layers := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("layers_%d", layers), func(b *testing.B) {
			h, _ := GenHost("bench", layers, 8)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				h.Update(16.667)
			}
		})
	}
}

func BenchmarkCrossFade(b *testing.B) {
	h, f := GenHost("bench", 1, 2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.PlayAnimation("base", fmt.Sprintf("pose%d", i%2), hostanim.WithPlayTransition(50))
		for range 4 {
			h.Update(16)
		}
	}
}

func BenchmarkSnapshot(b *testing.B) {
	_, f := GenHost("bench", 8, 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Snapshot()
	}
}

func BenchmarkMessengerEmit(b *testing.B) {
	m := hostanim.NewMessenger("bench")
	var n int
	for i := 0; i < 8; i++ {
		m.ListenTo("onTick", func(any) { n++ })
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Emit("onTick", i)
	}
}

func BenchmarkInterpolate(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v := 0.0
		sig := deferred.Interpolate(func() float64 { return v }, func(x float64) { v = x }, 1, 100, easing.CubicInOut)
		for sig.Pending() {
			sig.Execute(16)
		}
	}
}

func BenchmarkParseRig(b *testing.B) {
	data := GenRigYAML(8, 8)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := hostanim.ParseRig(data); err != nil {
			b.Fatal(err)
		}
	}
}
