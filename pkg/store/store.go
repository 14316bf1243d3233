package store

import "fmt"

// dimensionMismatchError formats the fatal configuration error raised
// when an existing index disagrees with the embedding model's output
// dimensionality.
func dimensionMismatchError(indexName string, indexDim, embeddingDim int) error {
	return fmt.Errorf(`dimension mismatch:
   index %q has dimension: %d
   the embedding model produces dimension: %d

   Solutions:
   1. Use a different index name (set PINECONE_INDEX_NAME)
   2. Delete the existing index and recreate it
   3. Use an embedding model that matches the index dimension`,
		indexName, indexDim, embeddingDim)
}
