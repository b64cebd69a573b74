package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image              string  `yaml:"image"`
	OriginX            float64 `yaml:"origin_x"`
	OriginY            float64 `yaml:"origin_y"`
	CenterOriginIfZero bool    `yaml:"center_origin_if_zero"`
}

// RenderLayerComponentSpec names a layer such as "birds". Index is used only
// when Layer is empty.
type RenderLayerComponentSpec struct {
	Layer string `yaml:"layer"`
	Index int    `yaml:"index"`
}

type PhysicsBodyComponentSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
}

type ProjectileComponentSpec struct {
	Power             string  `yaml:"power"`
	MaxImpulse        float64 `yaml:"max_impulse"`
	PowerMultiplier   float64 `yaml:"power_multiplier"`
	BoostMultiplier   float64 `yaml:"boost_multiplier"`
	SplitAngleDegrees float64 `yaml:"split_angle_degrees"`
}

type DestructibleComponentSpec struct {
	Kind string `yaml:"kind"`
}
