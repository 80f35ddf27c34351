package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/spherehorde/pkg/components"
	"github.com/decker502/spherehorde/pkg/utils"
)

// TestSpawnVolumeConfigure 测试内外采样盒的尺寸与偏移
func TestSpawnVolumeConfigure(t *testing.T) {
	tests := []struct {
		name            string
		inner, outer    float64
		underPlayer     bool
		wantZOffset     float64
		wantOuterZ      float64
		wantInnerZ      float64
		wantInnerCenter float64
	}{
		{
			name:            "允许出现在玩家下方",
			inner:           1500,
			outer:           2000,
			underPlayer:     true,
			wantZOffset:     0,
			wantOuterZ:      2000,
			wantInnerZ:      1500,
			wantInnerCenter: 0,
		},
		{
			name:            "不允许出现在玩家下方",
			inner:           1500,
			outer:           2000,
			underPlayer:     false,
			wantZOffset:     1000,
			wantOuterZ:      1000,
			wantInnerZ:      750,
			wantInnerCenter: -250,
		},
		{
			name:            "外圈小于内圈时提升到内圈",
			inner:           1000,
			outer:           500,
			underPlayer:     false,
			wantZOffset:     500,
			wantOuterZ:      500,
			wantInnerZ:      500,
			wantInnerCenter: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewSpawnVolume(rand.New(rand.NewSource(1)))
			v.Configure(tt.inner, tt.outer, tt.underPlayer)

			if v.ZOffset() != tt.wantZOffset {
				t.Errorf("Expected zOffset %.1f, got %.1f", tt.wantZOffset, v.ZOffset())
			}
			outer := v.Region(components.RegionOuter)
			inner := v.Region(components.RegionInner)
			if outer.Extent.Z != tt.wantOuterZ {
				t.Errorf("Expected outer Z extent %.1f, got %.1f", tt.wantOuterZ, outer.Extent.Z)
			}
			if inner.Extent.Z != tt.wantInnerZ {
				t.Errorf("Expected inner Z extent %.1f, got %.1f", tt.wantInnerZ, inner.Extent.Z)
			}
			if inner.CenterOffset.Z != tt.wantInnerCenter {
				t.Errorf("Expected inner center offset %.1f, got %.1f", tt.wantInnerCenter, inner.CenterOffset.Z)
			}
			if outer.Extent.X != outer.Radius || inner.Extent.Y != inner.Radius {
				t.Errorf("Horizontal extents should equal radius: outer=%+v inner=%+v", outer, inner)
			}
		})
	}
}

// TestSpawnVolumeBottomsAlign 测试不允许出现在玩家下方时内外圈底面都与玩家同高
func TestSpawnVolumeBottomsAlign(t *testing.T) {
	v := NewSpawnVolume(rand.New(rand.NewSource(1)))
	v.Configure(1500, 2000, false)
	player := utils.Vec3{X: 10, Y: 20, Z: 300}
	v.AnchorTo(player)

	for _, region := range []components.SpawnRegion{components.RegionInner, components.RegionOuter} {
		shape := v.Region(region)
		bottom := v.Origin().Z + shape.CenterOffset.Z - shape.Extent.Z
		if math.Abs(bottom-player.Z) > 1e-9 {
			t.Errorf("%s bottom expected at %.1f, got %.1f", region, player.Z, bottom)
		}
	}
}

// TestSpawnVolumeAnchorTo 测试原点跟随玩家并加上竖直偏移
func TestSpawnVolumeAnchorTo(t *testing.T) {
	v := NewSpawnVolume(nil)
	v.Configure(100, 200, false)
	v.AnchorTo(utils.Vec3{X: 5, Y: -5, Z: 50})

	want := utils.Vec3{X: 5, Y: -5, Z: 150}
	if v.Origin() != want {
		t.Errorf("Expected origin %+v, got %+v", want, v.Origin())
	}
	if v.UnderPlayer() {
		t.Error("Expected UnderPlayer() to be false")
	}
}

// TestSpawnVolumeSampleInsideBox 测试采样点始终落在采样盒内
func TestSpawnVolumeSampleInsideBox(t *testing.T) {
	v := NewSpawnVolume(rand.New(rand.NewSource(7)))
	v.Configure(1500, 2000, false)
	v.AnchorTo(utils.Vec3{X: 100, Y: 200, Z: 0})

	for _, region := range []components.SpawnRegion{components.RegionInner, components.RegionOuter} {
		shape := v.Region(region)
		center := v.Origin().Add(shape.CenterOffset)
		for i := 0; i < 2000; i++ {
			p := v.SampleRandomPoint(region)
			if math.Abs(p.X-center.X) > shape.Extent.X+1e-9 ||
				math.Abs(p.Y-center.Y) > shape.Extent.Y+1e-9 ||
				math.Abs(p.Z-center.Z) > shape.Extent.Z+1e-9 {
				t.Fatalf("%s sample %+v outside box center=%+v extent=%+v", region, p, center, shape.Extent)
			}
			if p.Z < -1e-9 {
				t.Fatalf("%s sample %+v below the player", region, p)
			}
		}
	}
}

// TestSpawnVolumeDeterministic 测试相同种子产生相同序列
func TestSpawnVolumeDeterministic(t *testing.T) {
	a := NewSpawnVolume(NewRand(99))
	b := NewSpawnVolume(NewRand(99))
	a.Configure(500, 800, true)
	b.Configure(500, 800, true)

	for i := 0; i < 10; i++ {
		pa := a.SampleRandomPoint(components.RegionOuter)
		pb := b.SampleRandomPoint(components.RegionOuter)
		if pa != pb {
			t.Fatalf("Sample %d differs: %+v vs %+v", i, pa, pb)
		}
	}
}
