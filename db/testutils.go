package db

import (
	"context"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func StartMongoContainer() (testcontainers.Container, string) {
	ctx := context.Background()

	mongoContainer, err := mongodb.RunContainer(ctx,
		testcontainers.WithImage("docker.io/mongo:6"),
	)
	if err != nil {
		panic(err)
	}

	connStr, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		panic(err)
	}

	return mongoContainer, connStr
}
