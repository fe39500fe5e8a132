package domain

// KeyPrefix namespaces every key this service writes to the database.
const KeyPrefix = "strainrec:"
