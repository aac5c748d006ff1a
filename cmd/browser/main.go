// Command browser is the CLI collaborator around the rendering core:
// it reads an HTML file and a CSS file, runs the parse/style/layout/
// paint pipeline, and writes a rendered PNG. It owns none of the
// core's algorithms — see internal/pipeline — only argument parsing,
// file I/O, and user-facing error reporting, per spec.md §1/§6.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/lukehoban/browser/dom"
	"github.com/lukehoban/browser/internal/pipeline"
	"github.com/lukehoban/browser/layout"
	rlog "github.com/lukehoban/browser/log"
	"github.com/lukehoban/browser/style"
)

var (
	outPath string
	verbose bool
	width   int
	height  int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to render")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "browser <html-file> <css-file>",
		Short: "Render an HTML document styled by a CSS stylesheet to a PNG",
		Args:  cobra.ExactArgs(2),
		RunE:  runRender,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVarP(&outPath, "out", "o", "output.png", "path to write the rendered PNG")
	root.Flags().IntVar(&width, "width", 800, "viewport width in CSS pixels")
	root.Flags().IntVar(&height, "height", 600, "viewport height in CSS pixels")
	root.AddCommand(newInspectCmd())
	return root
}

func runRender(cmd *cobra.Command, args []string) error {
	setLogLevel()

	result, err := pipeline.Run(args[0], args[1], width, height)
	if err != nil {
		return err
	}

	canvas := result.Canvas()
	if err := canvas.SavePNG(outPath); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	rlog.Infof("wrote %s (%dx%d)", outPath, width, height)
	return nil
}

func newInspectCmd() *cobra.Command {
	var stage string
	cmd := &cobra.Command{
		Use:   "inspect <html-file> <css-file>",
		Short: "Print the DOM, styled, or box tree for debugging",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setLogLevel()
			result, err := pipeline.Run(args[0], args[1], width, height)
			if err != nil {
				return err
			}
			switch stage {
			case "dom":
				fmt.Println(domTree(result.DOM).String())
			case "styled":
				fmt.Println(styledTree(result.Styled).String())
			case "box":
				fmt.Println(boxTree(result.Box).String())
			default:
				return fmt.Errorf("unknown --stage %q (want dom, styled, or box)", stage)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stage, "stage", "box", "which tree to print: dom, styled, or box")
	cmd.Flags().IntVar(&width, "width", 800, "viewport width in CSS pixels")
	cmd.Flags().IntVar(&height, "height", 600, "viewport height in CSS pixels")
	return cmd
}

func setLogLevel() {
	if verbose {
		rlog.SetLevel(rlog.DebugLevel)
	}
}

// domTree generalizes the teacher's hand-rolled printDOMTree into a
// treeprint.Tree, one node per DOM node.
func domTree(node *dom.Node) treeprint.Tree {
	root := treeprint.New()
	addDOMNode(root, node)
	return root
}

func addDOMNode(parent treeprint.Tree, node *dom.Node) {
	label := domLabel(node)
	if len(node.Children) == 0 {
		parent.AddNode(label)
		return
	}
	branch := parent.AddBranch(label)
	for _, child := range node.Children {
		addDOMNode(branch, child)
	}
}

func domLabel(node *dom.Node) string {
	switch node.Type {
	case dom.ElementNode:
		label := "<" + node.Data + ">"
		if id := node.ID(); id != "" {
			label += " #" + id
		}
		return label
	case dom.TextNode:
		return fmt.Sprintf("%q", node.Data)
	case dom.CommentNode:
		return "<!-- comment -->"
	default:
		return node.Data
	}
}

// styledTree generalizes the teacher's printStyledTree.
func styledTree(node *style.StyledNode) treeprint.Tree {
	root := treeprint.New()
	addStyledNode(root, node)
	return root
}

func addStyledNode(parent treeprint.Tree, node *style.StyledNode) {
	label := domLabel(node.Node)
	if len(node.Styles) > 0 {
		label += fmt.Sprintf(" [%d props]", len(node.Styles))
	}
	if len(node.Children) == 0 {
		parent.AddNode(label)
		return
	}
	branch := parent.AddBranch(label)
	for _, child := range node.Children {
		addStyledNode(branch, child)
	}
}

// boxTree generalizes the teacher's printLayoutTree.
func boxTree(box *layout.LayoutBox) treeprint.Tree {
	root := treeprint.New()
	addLayoutBox(root, box)
	return root
}

func addLayoutBox(parent treeprint.Tree, box *layout.LayoutBox) {
	label := boxLabel(box)
	if len(box.Children) == 0 {
		parent.AddNode(label)
		return
	}
	branch := parent.AddBranch(label)
	for _, child := range box.Children {
		addLayoutBox(branch, child)
	}
}

func boxLabel(box *layout.LayoutBox) string {
	tag := ""
	if box.StyledNode != nil && box.StyledNode.Node != nil {
		tag = box.StyledNode.Node.Data
	}
	c := box.Dimensions.Content
	return fmt.Sprintf("[%s] <%s> x=%.0f y=%.0f w=%.0f h=%.0f",
		box.BoxType, tag, c.X, c.Y, c.Width, c.Height)
}
