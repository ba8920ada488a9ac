package parse_test

import (
	"fmt"
	"strconv"

	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/parse"
)

func ExampleFormat_Parse() {
	f, _ := parse.Compile("{name:w} is {age:d} years old", nil)
	r, _ := f.Parse("Ada is 36 years old")

	fmt.Println("name:", r.Named["name"])
	fmt.Println("age:", r.Named["age"])
	// Output:
	// name: Ada
	// age: 36
}

func ExampleFormat_Parse_customType() {
	number := convert.MustNew("Number", `\d+`, func(s string) (any, error) {
		return strconv.ParseInt(s, 10, 64)
	})
	reg, _ := convert.BuildTypeDict(number)

	f, _ := parse.Compile("Test: {number:Number}", reg)
	r, _ := f.Parse("Test: 42")

	fmt.Println("number:", r.Named["number"])
	// Output:
	// number: 42
}

func ExampleFormat_FindAll() {
	f, _ := parse.Compile("<{n:d}>", nil)
	results, _ := f.FindAll("<1> then <2> then <3>")

	for _, r := range results {
		fmt.Println(r.Named["n"])
	}
	// Output:
	// 1
	// 2
	// 3
}

func ExampleFormat_Parse_cardinality() {
	number := convert.MustNew("Number", `\d+`, func(s string) (any, error) {
		return strconv.ParseInt(s, 10, 64)
	})
	reg, _ := convert.BuildTypeDict(number)

	// The + suffix derives a comma-separated list type on demand.
	f, _ := parse.Compile("List: {nums:Number+}", reg)
	r, _ := f.Parse("List: 1, 2, 3")

	fmt.Println(r.Named["nums"])
	// Output:
	// [1 2 3]
}
