package pipeline

import "testing"

// S1-S6 from spec.md §8, run end to end through the real pipeline.
func TestEndToEndScenarios(t *testing.T) {
	t.Run("S1_single_element_centering", func(t *testing.T) {
		r, err := RunSource(`<h1></h1>`, `h1 { width: 100px; margin: auto; }`, 800, 600)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		d := r.Box.Dimensions
		if d.Content.Width != 100 {
			t.Errorf("content.width = %v, want 100", d.Content.Width)
		}
		if d.Margin.Left != 350 || d.Margin.Right != 350 {
			t.Errorf("margins = %v/%v, want 350/350", d.Margin.Left, d.Margin.Right)
		}
		if d.Content.X != 350 || d.Content.Y != 0 || d.Content.Height != 0 {
			t.Errorf("position/height = (%v,%v,%v), want (350,0,0)", d.Content.X, d.Content.Y, d.Content.Height)
		}
	})

	t.Run("S2_stacking", func(t *testing.T) {
		r, err := RunSource(`<div><p></p><p></p></div>`,
			`div,p { display: block; } p { height: 20px; }`, 800, 600)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if r.Box.Dimensions.Content.Height != 40 {
			t.Errorf("outer content.height = %v, want 40", r.Box.Dimensions.Content.Height)
		}
		if len(r.Box.Children) != 2 {
			t.Fatalf("expected 2 children, got %d", len(r.Box.Children))
		}
		if r.Box.Children[0].Dimensions.Content.Y != 0 {
			t.Errorf("first <p>.content.y = %v, want 0", r.Box.Children[0].Dimensions.Content.Y)
		}
		if r.Box.Children[1].Dimensions.Content.Y != 20 {
			t.Errorf("second <p>.content.y = %v, want 20", r.Box.Children[1].Dimensions.Content.Y)
		}
	})

	t.Run("S3_specificity", func(t *testing.T) {
		r, err := RunSource(`<h1 id="x"></h1>`,
			`#x { width: 10px; } h1 { width: 50px; }`, 800, 600)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if r.Box.Dimensions.Content.Width != 10 {
			t.Errorf("content.width = %v, want 10 (id beats tag)", r.Box.Dimensions.Content.Width)
		}
	})

	t.Run("S4_underflow_with_negative_width", func(t *testing.T) {
		r, err := RunSource(`<body></body>`, `body { display: block; } body { width: 900px; }`, 800, 600)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if r.Box.Dimensions.Content.Width != 900 {
			t.Errorf("content.width = %v, want 900", r.Box.Dimensions.Content.Width)
		}
		if r.Box.Dimensions.Margin.Right != -100 {
			t.Errorf("margin.right = %v, want -100", r.Box.Dimensions.Margin.Right)
		}
	})

	t.Run("S5_inline_under_block_produces_anonymous", func(t *testing.T) {
		r, err := RunSource(`<div>a<span>b</span>c</div>`,
			`div { display: block; } span { display: inline; }`, 800, 600)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if len(r.Box.Children) != 1 {
			t.Fatalf("expected 1 child, got %d", len(r.Box.Children))
		}
		if len(r.Box.Children[0].Children) != 3 {
			t.Fatalf("expected 3 inline children under the anonymous box, got %d", len(r.Box.Children[0].Children))
		}
	})

	t.Run("S6_color_parse", func(t *testing.T) {
		r, err := RunSource(`<div></div>`, `div { background: #812dd3; }`, 800, 600)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		v, ok := r.Styled.Value("background")
		if !ok {
			t.Fatal("expected a resolved background value")
		}
		want := struct{ R, G, B, A uint8 }{129, 45, 211, 255}
		got := struct{ R, G, B, A uint8 }{v.Color.R, v.Color.G, v.Color.B, v.Color.A}
		if got != want {
			t.Errorf("background color = %+v, want %+v", got, want)
		}
	})
}

func TestRunSourceProducesDisplayListAndCanvas(t *testing.T) {
	r, err := RunSource(`<div></div>`, `div { width: 10px; height: 10px; background: #ff0000; }`, 50, 50)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(r.Display) == 0 {
		t.Fatal("expected a non-empty display list")
	}
	canvas := r.Canvas()
	if canvas.Width != 50 || canvas.Height != 50 {
		t.Errorf("canvas dims = %dx%d, want 50x50", canvas.Width, canvas.Height)
	}
}

func TestRunSourcePropagatesHTMLParseError(t *testing.T) {
	_, err := RunSource(`<div><span></div>`, ``, 800, 600)
	if err == nil {
		t.Fatal("expected a parse error for mismatched tags")
	}
}

func TestRunSourcePropagatesLayoutError(t *testing.T) {
	_, err := RunSource(`<div></div>`, `div { display: none; }`, 800, 600)
	if err == nil {
		t.Fatal("expected a LayoutError for a display:none root")
	}
}

func TestRunReportsFileReadErrors(t *testing.T) {
	_, err := Run("/nonexistent/path.html", "/nonexistent/path.css", 800, 600)
	if err == nil {
		t.Fatal("expected an error for a missing HTML file")
	}
}
