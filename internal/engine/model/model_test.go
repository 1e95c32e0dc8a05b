package model

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/vortex/internal/engine/buffer"
	"github.com/Faultbox/vortex/internal/engine/gpu/gputest"
	"github.com/Faultbox/vortex/internal/engine/mesh"
	"github.com/Faultbox/vortex/internal/engine/texture"
)

const tri = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func fixture(t *testing.T) (*mesh.Loader, *texture.Cache) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, texture.Solid(color.RGBA{R: 255, A: 255})))
	img := &fstest.MapFile{Data: buf.Bytes()}
	files := fstest.MapFS{
		"models/tri.obj":        {Data: []byte(tri)},
		"textures/diffuse.png":  img,
		"textures/specular.png": img,
		"textures/rock.png":     img,
	}
	rec := gputest.New()
	return mesh.NewLoader(buffer.NewRegistry(rec), files), texture.NewCache(rec, files)
}

func TestLoad(t *testing.T) {
	meshes, textures := fixture(t)

	m, err := Load(meshes, textures, "models/tri.obj", "textures", "textures/rock.png")
	require.NoError(t, err)
	assert.Equal(t, "models/tri.obj", m.Material.Name)
	assert.Equal(t, "textures/rock.png", m.Material.DiffuseMap().Path())
	assert.Equal(t, 1, meshes.Refs("models/tri.obj"))
	assert.Equal(t, 0, textures.Refs("textures/diffuse.png"))

	m.Release()
	assert.Nil(t, m.Mesh)
	assert.Equal(t, 0, meshes.Refs("models/tri.obj"))
	assert.Equal(t, 0, textures.Refs("textures/rock.png"))
}

func TestLoadFailuresReleaseMesh(t *testing.T) {
	meshes, textures := fixture(t)

	_, err := Load(meshes, textures, "models/tri.obj", "nowhere", "")
	assert.Error(t, err)
	assert.Equal(t, 0, meshes.Refs("models/tri.obj"))

	_, err = Load(meshes, textures, "models/tri.obj", "textures", "missing.png")
	assert.Error(t, err)
	assert.Equal(t, 0, meshes.Refs("models/tri.obj"))
	assert.Equal(t, 0, textures.Refs("textures/specular.png"))

	_, err = Load(meshes, textures, "models/none.obj", "textures", "")
	assert.Error(t, err)
}
