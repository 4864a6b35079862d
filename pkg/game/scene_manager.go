package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 创建新场景，用于开局与重开
type SceneFactory func() (Scene, error)

// SceneManager 管理当前活动场景
// 同一时间只有一个场景的 Update / Draw 被调用
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	restarts     int
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换活动场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动场景（可能为 nil）
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Restarts 已重开次数
func (sm *SceneManager) Restarts() int {
	return sm.restarts
}

// Restart 用工厂创建新场景并切换过去
// 创建失败时保留当前场景
func (sm *SceneManager) Restart() error {
	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set")
	}
	scene, err := sm.sceneFactory()
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	if scene == nil {
		return fmt.Errorf("scene factory returned nil")
	}
	sm.SwitchTo(scene)
	sm.restarts++
	log.Printf("[SceneManager] Scene restarted (%d)", sm.restarts)
	return nil
}

// Update 更新当前场景；场景请求重开时在更新后重建
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene == nil {
		return
	}
	sm.currentScene.Update(deltaTime)

	if f, ok := sm.currentScene.(Finishable); ok && f.WantsRestart() {
		if err := sm.Restart(); err != nil {
			log.Printf("[SceneManager] Error: restart failed: %v", err)
		}
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
