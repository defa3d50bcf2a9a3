// docexport exporta documentos a PDF desde la línea de comandos usando el mismo
// motor que la API (PostgreSQL, Chrome headless, almacén de estado).
//
// Uso:
//
//	docexport --company <id> --kind invoice --ids FV-1,FV-2 --out ./pdf
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // .env opcional
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "docexport: %v\n", err)
		os.Exit(1)
	}
}
