package render_test

import (
	"context"
	"fmt"

	"github.com/jackparrish/deskfolio/pkg/render"
)

func ExampleExtractVideoID() {
	id, _ := render.ExtractVideoID("https://youtu.be/abc123")
	fmt.Println(id)

	_, err := render.ExtractVideoID("https://example.com/notyoutube")
	fmt.Println(err != nil)
	// Output:
	// abc123
	// true
}

func ExampleEngine_Render() {
	res, _ := render.New().Render(context.Background(), "demo", `<Section title="Intro">Hello</Section><Gallery />`)
	fmt.Println(res.Unknown)
	// Output:
	// [Gallery]
}
