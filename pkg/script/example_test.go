package script_test

import (
	"context"
	"fmt"

	"github.com/imageforge/imageforge/pkg/script"
)

func ExampleEvaluator_Eval() {
	var e script.Evaluator
	out, err := e.Eval(context.Background(), `
		let size = 16;
		render(svg({width: size, height: size},
		  circle({cx: size / 2, cy: size / 2, r: 6, fill: "#7dd3fc"})))
	`)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)
	// Output:
	// <svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 16 16"><circle cx="8" cy="8" r="6" fill="#7dd3fc"></circle></svg>
}
