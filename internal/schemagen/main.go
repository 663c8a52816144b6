// Command schemagen generates the JSON schema embedded by pkg/config.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/cataplot/palette/pkg/config"
)

var outFile = flag.String("o", "config.v1beta1.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	r := &jsonschema.Reflector{
		DoNotReference: false,
	}

	err := r.AddGoComments("github.com/cataplot/palette", "../../pkg/config")
	if err != nil {
		log.Fatalf("add go comments: %v", err)
	}

	s := r.Reflect(&config.Config{})

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		log.Fatalf("marshal schema: %v", err)
	}

	err = os.WriteFile(*outFile, append(data, '\n'), 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
