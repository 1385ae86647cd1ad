// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"math/rand/v2"

	"github.com/comalice/hostanim"
	"github.com/comalice/hostanim/engine/softmix"
	"github.com/comalice/hostanim/internal/primitives"
	"gopkg.in/yaml.v3"
)

// GenRig creates a rig with layers layers. The bottom layer is an override
// layer of single clips; every other layer is additive with a random blink
// group and a free-blend group of width sub-animations.
func GenRig(layers, width int) *primitives.RigConfig {
	if layers < 1 {
		layers = 1
	}
	if width < 1 {
		width = 1
	}
	r := primitives.NewRigConfig(fmt.Sprintf("rig_%d_%d", layers, width))
	base := r.Layer("base")
	for i := 0; i < width; i++ {
		base.Animation(fmt.Sprintf("pose%d", i), primitives.Single).WithClip(fmt.Sprintf("pose%d", i))
	}
	for l := 1; l < layers; l++ {
		layer := r.Layer(fmt.Sprintf("layer%d", l)).Additive()
		random := layer.Animation("random", primitives.Random).WithPlayInterval(500).WithTransition(50, "quadOut")
		blend := layer.Animation("blend", primitives.FreeBlend)
		for i := 0; i < width; i++ {
			random.Sub(fmt.Sprintf("r%d", i)).WithClip(fmt.Sprintf("pose%d", i))
			blend.Sub(fmt.Sprintf("b%d", i)).WithClip(fmt.Sprintf("pose%d", i)).WithWeight(1 / float64(width))
		}
	}
	return r
}

// GenLibrary creates the clips GenRig references
func GenLibrary(width int) softmix.Library {
	lib := make(softmix.Library, width)
	for i := 0; i < width; i++ {
		name := fmt.Sprintf("pose%d", i)
		lib[name] = softmix.NewClip(name, 1+float64(i)/10)
	}
	return lib
}

// GenHost builds a host whose AnimationFeature carries GenRig(layers, width)
// with every layer playing.
func GenHost(id string, layers, width int) (*hostanim.Host, *hostanim.AnimationFeature) {
	h := hostanim.NewHost(id)
	f := hostanim.NewAnimationFeature(h, softmix.NewMixer(),
		hostanim.WithRandomSource(rand.New(rand.NewPCG(uint64(layers), uint64(width)))))
	h.AddFeature(f, false)
	if _, err := hostanim.ApplyRig(f, GenRig(layers, width), GenLibrary(width)); err != nil {
		panic(err)
	}
	f.PlayAnimation("base", "pose0")
	for l := 1; l < layers; l++ {
		name := fmt.Sprintf("layer%d", l)
		if l%2 == 0 {
			f.PlayAnimation(name, "blend")
		} else {
			f.PlayAnimation(name, "random")
		}
	}
	return h, f
}

// GenRigYAML generates YAML bytes for GenRig.
func GenRigYAML(layers, width int) []byte {
	data, err := yaml.Marshal(GenRig(layers, width))
	if err != nil {
		panic(err)
	}
	return data
}
