/*
Package ports defines the driven ports (interfaces) of the wayfinder engine.

These interfaces decouple the exploration core from the environment it explores and
from the storage backends that keep solutions around.

# Key Interfaces

  - Sensor: Reports what lies in a direction from the agent's current cell.
  - Mover: Attempts to step the agent in a direction.
  - Agent: The capability pair handed to the solver.
  - SolutionStore: Persists solutions (memory, file or Redis).
*/
package ports
