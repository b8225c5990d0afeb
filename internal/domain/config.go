package domain

// DefaultKeyPrefix namespaces every key the catalog writes to Redis or Valkey.
const DefaultKeyPrefix = "immigrow:"
