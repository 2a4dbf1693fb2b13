package object

import "fmt"

// Vec2 and Vec3 are small fixed-shape float-coordinate records (spec
// §3.2), backing the `vectors` native module. They carry no pointers, so
// Trace has nothing to mark.
type Vec2 struct {
	Header
	X, Y float64
}

func NewVec2(x, y float64) *Vec2 { return &Vec2{X: x, Y: y} }

func (v *Vec2) Type() string       { return "vec2" }
func (v *Vec2) String() string     { return fmt.Sprintf("Vec2(%g, %g)", v.X, v.Y) }
func (v *Vec2) Size() uintptr      { return 32 }
func (v *Vec2) Trace(func(Value))  {}

type Vec3 struct {
	Header
	X, Y, Z float64
}

func NewVec3(x, y, z float64) *Vec3 { return &Vec3{X: x, Y: y, Z: z} }

func (v *Vec3) Type() string      { return "vec3" }
func (v *Vec3) String() string    { return fmt.Sprintf("Vec3(%g, %g, %g)", v.X, v.Y, v.Z) }
func (v *Vec3) Size() uintptr     { return 40 }
func (v *Vec3) Trace(func(Value)) {}
