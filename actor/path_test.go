package actor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathChildAndString(t *testing.T) {
	root := RootPath()
	require.Equal(t, "/", root.String())

	user := root.Child(UserGuardianName)
	require.Equal(t, "/user", user.String())

	foo := user.Child("foo").Child("bar")
	require.Equal(t, "/user/foo/bar", foo.String())
	require.Equal(t, "bar", foo.Name())
	require.Equal(t, "/user/foo", foo.Parent().String())
}

func TestPathEquality(t *testing.T) {
	a := RootPath().Child("user").Child("foo")
	b := RootPath().Child("user").Child("foo")
	c := RootPath().Child("user").Child("bar")

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestParsePath(t *testing.T) {
	p := ParsePath("/user/foo/bar")
	require.Equal(t, []string{"user", "foo", "bar"}, p.Segments())

	require.Equal(t, RootPath(), ParsePath("/"))
	require.Equal(t, RootPath(), ParsePath(""))
}

func TestDistantPathIsInert(t *testing.T) {
	d := DistantPath("node-7:4242")
	require.True(t, d.IsDistant())
	require.Equal(t, "distant:node-7:4242", d.String())

	require.Panics(t, func() {
		d.Child("anything")
	})
}
