package domain

// KeyPrefix namespaces every key kabunote writes to the store.
const KeyPrefix = "kabunote:"
