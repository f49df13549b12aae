package entity

// Renderer draws scene entities.
type Renderer interface {
	RenderGround(ground *Ground)
	RenderBall(ball *Ball)
	Clear()
	Present()
}
