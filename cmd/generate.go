package main

//go:generate echo "Generating SQLC files..."
//go:generate bash -c "export PATH=$$PATH:~/go/bin && sqlc generate -f ../storage/sqlc.yaml"
//go:generate echo "SQLC files generated"

// Regenerate storage/db after editing storage/queries or the migrations:
//
// go generate ./...
//
// from the project root directory.
