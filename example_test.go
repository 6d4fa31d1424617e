package safelist_test

import (
	"fmt"

	"github.com/njchilds90/safelist"
)

func ExampleClean() {
	input := `<p>Hello <script>alert('xss')</script>world</p>`
	clean, _ := safelist.Clean(input, "", safelist.Relaxed())
	fmt.Println(clean)
	// Output: <p>Hello world</p>
}

func ExampleClean_links() {
	input := `<a href="http://example.com/">example</a>`
	clean, _ := safelist.Clean(input, "", safelist.Basic())
	fmt.Println(clean)
	// Output: <a href="http://example.com/" rel="nofollow">example</a>
}

func ExampleStripTags() {
	input := `<p>Hello <b>world</b></p>`
	text, _ := safelist.StripTags(input)
	fmt.Println(text)
	// Output: Hello world
}

func ExamplePolicy_AddDomains() {
	p := safelist.BasicWithImages().AddDomains("img", "src", "example.com")
	input := `<img src="http://evil.example/x.png"><img src="http://img.example.com/x.png">`
	clean, _ := safelist.Clean(input, "", p)
	fmt.Println(clean)
	// Output: <img src="http://img.example.com/x.png" />
}

func ExamplePolicy_PreserveRelativeLinks() {
	p := safelist.Basic().PreserveRelativeLinks(true)
	input := `<a href="/docs">docs</a>`
	clean, _ := safelist.Clean(input, "https://example.com/", p)
	fmt.Println(clean)
	// Output: <a href="/docs" rel="nofollow">docs</a>
}
