package main

import (
	"os"
	"path/filepath"

	"github.com/jhoicas/lacteos-api/docs"
)

// swaggerFile devuelve el swagger.json a servir en /docs. Sin override se vuelca a un archivo
// temporal el spec registrado por el paquete docs.
func swaggerFile(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", err
		}
		return override, nil
	}
	path := filepath.Join(os.TempDir(), "lacteos-api-swagger.json")
	if err := os.WriteFile(path, []byte(docs.SwaggerInfo.ReadDoc()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
