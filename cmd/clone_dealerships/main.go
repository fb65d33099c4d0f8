// clone_dealerships copia concesionarios desde otra tabla (otra base de
// datos u otro esquema), cruzando solo los campos que existan en ambas.
//
// Uso: go run ./cmd/clone_dealerships [flags] <tabla_origen>
//
//	-connection  nombre configurado (CLONE_SOURCE_*) o DSN literal; las
//	             rutas .db/.sqlite se abren como SQLite
//	-truncate    vacía la tabla destino antes de copiar (pide confirmación)
//	-dry-run     muestra las primeras 3 filas mapeadas sin escribir
//
// Sale con 0 si la corrida termina; con 1 ante cualquier fallo de
// preparación, incluida la falta de campos en común.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/Concesionarios-api/internal/application/importer"
	"github.com/jhoicas/Concesionarios-api/internal/domain"
	"github.com/jhoicas/Concesionarios-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Concesionarios-api/internal/infrastructure/source"
	"github.com/jhoicas/Concesionarios-api/pkg/config"
	"github.com/jhoicas/Concesionarios-api/pkg/logger"
)

func main() {
	connection := flag.String("connection", "default", "conexión origen: nombre configurado o DSN")
	truncate := flag.Bool("truncate", false, "vaciar la tabla destino antes de copiar")
	dryRun := flag.Bool("dry-run", false, "previsualizar sin escribir")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: clone_dealerships [flags] <tabla_origen>")
		os.Exit(1)
	}
	sourceTable := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	// El truncate es destructivo: confirmación antes de abrir nada.
	if *truncate && !*dryRun && !confirm("Esto borrará todos los concesionarios existentes. ¿Continuar?") {
		fmt.Println("Operación cancelada.")
		return
	}

	ctx := context.Background()
	log.Info().Str("table", sourceTable).Msg("iniciando clonado de concesionarios")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL destino")
		os.Exit(1)
	}
	defer pool.Close()

	src, err := source.Open(ctx, cfg.Sources.Resolve(*connection), sourceTable)
	if err != nil {
		log.Error().Err(err).Msg("abrir fuente")
		os.Exit(1)
	}
	defer src.Close(ctx)

	repo := postgres.NewDealershipRepository(pool)
	uc := importer.NewCloneUseCase(repo, log)

	result, err := uc.Run(ctx, src, importer.CloneOptions{
		Truncate: *truncate && !*dryRun,
		DryRun:   *dryRun,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoMatchingFields) {
			// Una corrida que no puede copiar nada no es una corrida exitosa
			log.Error().Msg("sin campos en común entre tabla origen y destino")
			os.Exit(1)
		}
		log.Error().Err(err).Msg("clonado fallido")
		os.Exit(1)
	}

	if result.DryRun {
		fmt.Printf("Campos en común: %s\n", strings.Join(result.Fields, ", "))
		fmt.Printf("Filas en la fuente: %d\n", result.Total)
		fmt.Println("Vista previa (mapeada):")
		for _, sample := range result.Samples {
			printSample(sample, result.Fields)
		}
		return
	}

	fmt.Printf("Importados %d concesionarios.\n", result.Imported)
	if result.Failed > 0 {
		fmt.Printf("Fallaron %d filas (ver log).\n", result.Failed)
	}
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func printSample(rec importer.Record, fields []string) {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f, rec[f]))
	}
	fmt.Println("  " + strings.Join(parts, " | "))
}
