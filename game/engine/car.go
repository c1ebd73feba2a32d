package engine

// carMask is the rendered silhouette of every car, [row][column].
// Collision ignores it and uses the full bounding box.
var carMask = [CarHeight][CarWidth]int{
	{0, 1, 0},
	{1, 1, 1},
	{0, 1, 0},
	{1, 0, 1},
}

const (
	playerSpawnX = 3
	playerSpawnY = 16
	enemySpawnY  = -5

	// EnemyTravelSteps is how many steps an enemy takes from spawn until it
	// has left the bottom of the field
	EnemyTravelSteps = FieldHeight - enemySpawnY
)

// LaneDirection is the direction of a lane switch
type LaneDirection int

const (
	LaneLeft LaneDirection = iota
	LaneRight
)

// Car is an axis-aligned CarWidth x CarHeight box anchored at its top-left cell
type Car struct {
	Pos Position `json:"pos"`
}

// CollidesWith reports whether the bounding boxes of both cars overlap
func (c Car) CollidesWith(other Car) bool {
	return c.Pos.X < other.Pos.X+CarWidth && other.Pos.X < c.Pos.X+CarWidth &&
		c.Pos.Y < other.Pos.Y+CarHeight && other.Pos.Y < c.Pos.Y+CarHeight
}

// Model returns the occupied cells of the car silhouette
func (c Car) Model() []Position {
	model := make([]Position, 0, CarWidth*CarHeight)
	for dy := 0; dy < CarHeight; dy++ {
		for dx := 0; dx < CarWidth; dx++ {
			if carMask[dy][dx] == 1 {
				model = append(model, c.Pos.Add(dx, dy))
			}
		}
	}
	return model
}

// Top returns the top row of the box
func (c Car) Top() int {
	return c.Pos.Y
}

// PlayerCar is the player-controlled vehicle
type PlayerCar struct {
	Car
}

// SpawnPlayer returns a player in the middle lane at the bottom of the field
func SpawnPlayer() PlayerCar {
	return PlayerCar{Car{Pos: Position{X: playerSpawnX, Y: playerSpawnY}}}
}

// SwitchLane returns the player shifted one lane in dir. The second result is
// false, and the receiver is returned unchanged, when the shift would leave
// the lane area.
func (p PlayerCar) SwitchLane(dir LaneDirection) (PlayerCar, bool) {
	dx := LaneWidth
	if dir == LaneLeft {
		dx = -LaneWidth
	}
	left := p.Pos.X + dx
	if left < 0 || left+CarWidth-1 > MaxLaneX {
		return p, false
	}
	return PlayerCar{Car{Pos: p.Pos.Add(dx, 0)}}, true
}

// Lane returns the lane slot index the player occupies
func (p PlayerCar) Lane() int {
	return p.Pos.X / LaneWidth
}

// EnemyCar is a downward-scrolling obstacle. ID is assigned by the EnemySet.
type EnemyCar struct {
	ID uint64 `json:"id"`
	Car
}

// NewEnemy returns an enemy fully above the field in the given lane slot
func NewEnemy(lane int) EnemyCar {
	return EnemyCar{Car: Car{Pos: Position{X: lane * LaneWidth, Y: enemySpawnY}}}
}

// NewEnemyAt returns an enemy anchored at an arbitrary position
func NewEnemyAt(pos Position) EnemyCar {
	return EnemyCar{Car: Car{Pos: pos}}
}

// Moved returns the enemy shifted vertically by offset rows
func (e EnemyCar) Moved(offset int) EnemyCar {
	e.Pos = e.Pos.Add(0, offset)
	return e
}
