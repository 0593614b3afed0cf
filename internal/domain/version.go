package domain

// CurrentSchemaVersion is stamped onto every record written to the store
// so persisted JSON shapes can evolve safely.
const CurrentSchemaVersion = 1
