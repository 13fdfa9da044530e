package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

// SumDecls is a file of sum type declarations:
//
//	sum Expression = Identifier | Number | Call;
type SumDecls struct {
	Sums []*Sum `@@*`
}

type Sum struct {
	Name    string   `"sum" @Ident "="`
	Members []string `@Ident ("|" @Ident)* ";"`
}

// Validate rejects a member listed twice in the same sum.
func (s *SumDecls) Validate() error {
	for _, sum := range s.Sums {
		seen := map[string]bool{}
		for _, member := range sum.Members {
			if seen[member] {
				return fmt.Errorf("%s lists %s more than once", sum.Name, member)
			}
			seen[member] = true
		}
	}
	return nil
}

// GenerateMarkers emits one interface per sum, embedding Node, and a marker
// method on each member's pointer type.
func GenerateMarkers(pkgname string, s *SumDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by tool from nodes.sum. DO NOT EDIT.")

	for _, sum := range s.Sums {
		f.Type().Id(sum.Name).Interface(
			Id("Node"),
			Id("is_" + sum.Name).Params(),
		)

		for _, member := range sum.Members {
			f.Func().Params(Id("v").Op("*").Id(member)).Id("is_" + sum.Name).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: tool <in.sum> <out.go> <package>")
		os.Exit(2)
	}

	parser := participle.MustBuild(&SumDecls{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	decls := SumDecls{}
	err = parser.ParseBytes(inData, &decls)
	if err != nil {
		panic(err)
	}
	if err := decls.Validate(); err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateMarkers(pkgname, &decls)), 0644)
	if err != nil {
		panic(err)
	}
}
