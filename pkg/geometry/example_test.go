package geometry_test

import (
	"fmt"

	"github.com/jackparrish/deskfolio/pkg/geometry"
)

func ExampleCompute() {
	items := []geometry.Item{
		{ID: "forest", Shape: geometry.Landscape},
		{ID: "seenit", Shape: geometry.Portrait},
	}
	res := geometry.Compute(items, geometry.Viewport{Width: 1440, Height: 900}, nil)

	fmt.Println(res.Breakpoint, len(res.Placements))
	// Output: desktop 2
}

func ExampleBounds_Clamp() {
	vp := geometry.Viewport{Width: 1440, Height: 900}
	b := geometry.UsableBounds(vp, geometry.Footprint(geometry.Square, geometry.Classify(vp)))

	x, y := b.Clamp(-500, 5000)
	fmt.Println(x, y)
	// Output: 24 756
}
