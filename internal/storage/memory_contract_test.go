package storage_test

import (
	"testing"

	"github.com/julianstephens/studydojo/internal/storage"
	"github.com/julianstephens/studydojo/internal/storage/storagetest"
)

func TestMemoryContract(t *testing.T) {
	storagetest.RunContract(t, storage.NewMemory())
}
