package prefabs

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/hollis909/ledgerunner/motion"
)

// LoadSpec reads and unmarshals one prefab file into the given spec type.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Friction float64 `yaml:"friction"`
}

type PlayerSpec struct {
	Name                         string        `yaml:"name"`
	MoveSpeed                    float64       `yaml:"move_speed"`
	JumpSpeed                    float64       `yaml:"jump_speed"`
	PlatformRelativeJump         bool          `yaml:"platform_relative_jump"`
	AllowWallGrab                bool          `yaml:"allow_wall_grab"`
	AllowWallJump                bool          `yaml:"allow_wall_jump"`
	DisableGravityDuringWallGrab bool          `yaml:"disable_gravity_during_wall_grab"`
	WallJumpControlDelay         float64       `yaml:"wall_jump_control_delay"`
	GrabPointX                   float64       `yaml:"grab_point_x"`
	GrabPointY                   float64       `yaml:"grab_point_y"`
	GrabRadius                   float64       `yaml:"grab_radius"`
	WallGrabMask                 uint          `yaml:"wall_grab_mask"`
	Mass                         float64       `yaml:"mass"`
	Transform                    TransformSpec `yaml:"transform"`
	Collider                     ColliderSpec  `yaml:"collider"`
}

// MovementConfig maps the tuning fields onto a motion.Config.
func (s *PlayerSpec) MovementConfig() motion.Config {
	return motion.Config{
		MaxSpeed:                     s.MoveSpeed,
		JumpSpeed:                    s.JumpSpeed,
		PlatformRelativeJump:         s.PlatformRelativeJump,
		AllowWallGrab:                s.AllowWallGrab,
		AllowWallJump:                s.AllowWallJump,
		DisableGravityDuringWallGrab: s.DisableGravityDuringWallGrab,
		WallJumpControlDelay:         s.WallJumpControlDelay,
		GrabPoint:                    cp.Vector{X: s.GrabPointX, Y: s.GrabPointY},
		GrabRadius:                   s.GrabRadius,
		WallGrabMask:                 s.WallGrabMask,
	}
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type WallSpec struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Grabbable bool    `yaml:"grabbable"`
}

type PlatformSpec struct {
	FromX  float64 `yaml:"from_x"`
	FromY  float64 `yaml:"from_y"`
	ToX    float64 `yaml:"to_x"`
	ToY    float64 `yaml:"to_y"`
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type LevelSpec struct {
	Name      string         `yaml:"name"`
	Spawn     TransformSpec  `yaml:"spawn"`
	Walls     []WallSpec     `yaml:"walls"`
	Platforms []PlatformSpec `yaml:"platforms"`
}

func LoadLevelSpec() (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec]("level.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
