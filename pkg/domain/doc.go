/*
Package domain contains the core models shared by the wayfinder engine and its adapters.

It defines the vocabulary of an exploration: cardinal directions, sensing outcomes,
cell identifiers, neighbor slots and the Solution produced by a solve. This package
is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Direction: One of the four cardinal directions, enumerated in the fixed order of Directions.
  - Outcome: What a peek reports for a neighbor (Open, Wall or Goal).
  - CellID: The coordinate of a discovered cell relative to the start (Origin).
  - Slot / NeighborSlots: What is known about each side of a discovered cell.
  - Solution: The outcome of a solve (status, path from start to goal, counters).
*/
package domain
